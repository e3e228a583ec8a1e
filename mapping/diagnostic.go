package mapping

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies a non-fatal condition met during inference.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// IntrospectionFailure: a table could not be described and was dropped.
	IntrospectionFailure DiagnosticKind = "introspection_failure"
	// MissingPrimaryKey: a table has no primary key and cannot be mapped.
	MissingPrimaryKey DiagnosticKind = "missing_primary_key"
	// DuplicateAssociation: an association name collided; the first one wins.
	DuplicateAssociation DiagnosticKind = "duplicate_association"
	// InsufficientJoinTableInfo: a join table lacks a second foreign key.
	InsufficientJoinTableInfo DiagnosticKind = "insufficient_join_table_info"
	// UnresolvedReference: a foreign key points at a table that is not an entity.
	UnresolvedReference DiagnosticKind = "unresolved_reference"
	// CrossSchemaDenied: a relationship crosses schemas without an allow-list entry.
	CrossSchemaDenied DiagnosticKind = "cross_schema_denied"
	// DuplicateClass: two tables resolve to the same class name.
	DuplicateClass DiagnosticKind = "duplicate_class"
)

// Diagnostic is a structured report of a non-fatal condition.
type Diagnostic struct {
	Kind    DiagnosticKind `yaml:"kind" json:"kind"`
	Entity  string         `yaml:"entity,omitempty" json:"entity,omitempty"`
	Table   string         `yaml:"table,omitempty" json:"table,omitempty"`
	Field   string         `yaml:"field,omitempty" json:"field,omitempty"`
	Message string         `yaml:"message" json:"message"`
}

// String returns a one-line description of the diagnostic.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	if d.Entity != "" {
		fmt.Fprintf(&b, " entity=%s", d.Entity)
	}
	if d.Table != "" {
		fmt.Fprintf(&b, " table=%s", d.Table)
	}
	if d.Field != "" {
		fmt.Fprintf(&b, " field=%s", d.Field)
	}
	if d.Message != "" {
		b.WriteString(": ")
		b.WriteString(d.Message)
	}
	return b.String()
}
