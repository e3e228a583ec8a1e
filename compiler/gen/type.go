package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// GoKind is the Go type family a database column is rendered as.
type GoKind uint8

// Go kinds.
const (
	GoAny GoKind = iota
	GoInt64
	GoUint64
	GoString
	GoBool
	GoFloat64
	GoTime
	GoJSON
	GoBytes
)

var otherKinds = map[string]GoKind{
	"bool":                        GoBool,
	"boolean":                     GoBool,
	"real":                        GoFloat64,
	"float":                       GoFloat64,
	"float4":                      GoFloat64,
	"float8":                      GoFloat64,
	"double":                      GoFloat64,
	"double precision":            GoFloat64,
	"decimal":                     GoFloat64,
	"numeric":                     GoFloat64,
	"date":                        GoTime,
	"datetime":                    GoTime,
	"time":                        GoTime,
	"timetz":                      GoTime,
	"timestamp":                   GoTime,
	"timestamptz":                 GoTime,
	"timestamp with time zone":    GoTime,
	"timestamp without time zone": GoTime,
	"json":                        GoJSON,
	"jsonb":                       GoJSON,
	"blob":                        GoBytes,
	"tinyblob":                    GoBytes,
	"mediumblob":                  GoBytes,
	"longblob":                    GoBytes,
	"binary":                      GoBytes,
	"varbinary":                   GoBytes,
	"bytea":                       GoBytes,
	"uuid":                        GoString,
	"enum":                        GoString,
}

// KindOf returns the Go kind a mapped field is rendered as.
func KindOf(f *mapping.Field) GoKind {
	switch f.Kind {
	case schema.KindString:
		return GoString
	case schema.KindInteger:
		if f.Unsigned != nil && *f.Unsigned {
			return GoUint64
		}
		return GoInt64
	}
	if k, ok := otherKinds[strings.ToLower(f.Type)]; ok {
		return k
	}
	return GoAny
}

// nillable reports whether NULL is representable without a pointer.
func (k GoKind) nillable() bool {
	return k == GoAny || k == GoJSON || k == GoBytes
}

func (k GoKind) code() *jen.Statement {
	switch k {
	case GoInt64:
		return jen.Int64()
	case GoUint64:
		return jen.Uint64()
	case GoString:
		return jen.String()
	case GoBool:
		return jen.Bool()
	case GoFloat64:
		return jen.Float64()
	case GoTime:
		return jen.Qual("time", "Time")
	case GoJSON:
		return jen.Qual("encoding/json", "RawMessage")
	case GoBytes:
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

// goType returns the Go type of a mapped field. Nullable columns become
// pointers unless the type already has a nil value.
func goType(f *mapping.Field) jen.Code {
	k := KindOf(f)
	if f.Nullable && !k.nillable() {
		return jen.Op("*").Add(k.code())
	}
	return k.code()
}
