package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

func TestKindOf(t *testing.T) {
	unsigned := true
	tests := []struct {
		name     string
		field    *mapping.Field
		expected GoKind
	}{
		{"string", &mapping.Field{Kind: schema.KindString, Type: "varchar"}, GoString},
		{"integer", &mapping.Field{Kind: schema.KindInteger, Type: "bigint"}, GoInt64},
		{"unsigned", &mapping.Field{Kind: schema.KindInteger, Type: "int", Unsigned: &unsigned}, GoUint64},
		{"boolean", &mapping.Field{Type: "boolean"}, GoBool},
		{"decimal", &mapping.Field{Type: "decimal"}, GoFloat64},
		{"double precision", &mapping.Field{Type: "double precision"}, GoFloat64},
		{"timestamp", &mapping.Field{Type: "TIMESTAMP"}, GoTime},
		{"jsonb", &mapping.Field{Type: "jsonb"}, GoJSON},
		{"bytea", &mapping.Field{Type: "bytea"}, GoBytes},
		{"uuid", &mapping.Field{Type: "uuid"}, GoString},
		{"unknown", &mapping.Field{Type: "geometry"}, GoAny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.field))
		})
	}
}

func TestGoType(t *testing.T) {
	tests := []struct {
		name     string
		field    *mapping.Field
		expected string
	}{
		{"not null", &mapping.Field{Kind: schema.KindInteger}, "int64"},
		{"nullable", &mapping.Field{Kind: schema.KindString, Nullable: true}, "*string"},
		{"nullable time", &mapping.Field{Type: "datetime", Nullable: true}, "*time.Time"},
		{"nullable bytes", &mapping.Field{Type: "blob", Nullable: true}, "[]byte"},
		{"nullable json", &mapping.Field{Type: "json", Nullable: true}, "json.RawMessage"},
		{"nullable any", &mapping.Field{Type: "point", Nullable: true}, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fmt.Sprintf("%#v", goType(tt.field)))
		})
	}
}
