package schema

import "strings"

// Separator separates the schema segment from the table segment.
const Separator = "."

// QualifiedName is a table name split into its optional schema and
// its local name.
type QualifiedName struct {
	Schema string `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
	Name   string `yaml:"name" msgpack:"name"`
}

// ParseQualifiedName splits s at the first separator.
// A name without separator has an empty schema.
func ParseQualifiedName(s string) QualifiedName {
	if i := strings.Index(s, Separator); i >= 0 {
		return QualifiedName{Schema: s[:i], Name: s[i+1:]}
	}
	return QualifiedName{Name: s}
}

// Qualify joins a schema and a table name. An empty schema yields the bare name.
func Qualify(schemaName, table string) string {
	if schemaName == "" {
		return table
	}
	return schemaName + Separator + table
}

// HasSchema reports whether the name carries a schema segment.
func (n QualifiedName) HasSchema() bool { return n.Schema != "" }

// String returns the dotted form of the name.
func (n QualifiedName) String() string { return Qualify(n.Schema, n.Name) }

// SameSchema reports whether both names live in the same schema
// (both unqualified counts as the same schema).
func (n QualifiedName) SameSchema(o QualifiedName) bool {
	return strings.EqualFold(n.Schema, o.Schema)
}
