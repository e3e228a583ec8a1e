// Package mapping holds the object-relational mapping descriptors produced
// by the reverse-engineering engine.
package mapping

import (
	"fmt"
	"strings"

	"github.com/syssam/schemamap/schema"
)

// AssociationKind is the cardinality of an association.
type AssociationKind uint8

// Association kinds.
const (
	OneToOne AssociationKind = iota + 1
	ManyToOne
	OneToMany
	ManyToMany
)

var kindNames = map[AssociationKind]string{
	OneToOne:   "one_to_one",
	ManyToOne:  "many_to_one",
	OneToMany:  "one_to_many",
	ManyToMany: "many_to_many",
}

// String returns the snake_case name of the kind.
func (k AssociationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AssociationKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k AssociationKind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("mapping: invalid association kind %d", k)
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AssociationKind) UnmarshalText(text []byte) error {
	for kind, s := range kindNames {
		if s == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("mapping: unknown association kind %q", text)
}

// IsToMany reports whether the association holds a collection.
func (k AssociationKind) IsToMany() bool { return k == OneToMany || k == ManyToMany }

// IDGenerator is the identifier generation strategy of an entity.
type IDGenerator string

// Identifier generation strategies.
const (
	// GeneratorNone leaves generation to the caller (assigned or composite keys).
	GeneratorNone IDGenerator = "none"
	// GeneratorAuto selects database auto-increment.
	GeneratorAuto IDGenerator = "auto"
)

// CascadeAll is the only cascade value the engine infers.
const CascadeAll = "all"

type (
	// Entity is the mapping of one class to its backing table.
	Entity struct {
		// Name is the class name, namespace segments joined by ".".
		Name            string         `yaml:"name" json:"name"`
		Table           string         `yaml:"table" json:"table"`
		RepositoryClass string         `yaml:"repository_class,omitempty" json:"repository_class,omitempty"`
		IDGenerator     IDGenerator    `yaml:"id_generator" json:"id_generator"`
		Fields          []*Field       `yaml:"fields" json:"fields"`
		Associations    []*Association `yaml:"associations,omitempty" json:"associations,omitempty"`
		// Diagnostics collects the non-fatal conditions met while
		// deriving this entity.
		Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
	}

	// Field maps one column to a scalar field.
	Field struct {
		Name     string            `yaml:"name" json:"name"`
		Column   string            `yaml:"column" json:"column"`
		Type     string            `yaml:"type" json:"type"`
		Kind     schema.ColumnKind `yaml:"kind" json:"kind"`
		Nullable bool              `yaml:"nullable" json:"nullable"`
		Length   *int              `yaml:"length,omitempty" json:"length,omitempty"`
		Fixed    *bool             `yaml:"fixed,omitempty" json:"fixed,omitempty"`
		Unsigned *bool             `yaml:"unsigned,omitempty" json:"unsigned,omitempty"`
		ID       bool              `yaml:"id,omitempty" json:"id,omitempty"`
		// AssociationKey marks an identifier column that is also part of a
		// foreign key (a "foreign primary key").
		AssociationKey bool `yaml:"association_key,omitempty" json:"association_key,omitempty"`
	}

	// JoinColumn pairs a local column with the column it references.
	JoinColumn struct {
		Name                 string `yaml:"name" json:"name"`
		ReferencedColumnName string `yaml:"referenced_column_name" json:"referenced_column_name"`
	}

	// JoinTable describes the link table of a many-to-many association.
	JoinTable struct {
		Name               string       `yaml:"name" json:"name"`
		JoinColumns        []JoinColumn `yaml:"join_columns" json:"join_columns"`
		InverseJoinColumns []JoinColumn `yaml:"inverse_join_columns" json:"inverse_join_columns"`
	}

	// Association maps a relationship to another entity.
	Association struct {
		Kind         AssociationKind `yaml:"kind" json:"kind"`
		Name         string          `yaml:"name" json:"name"`
		TargetEntity string          `yaml:"target_entity" json:"target_entity"`
		// JoinColumns is set on owning to-one sides.
		JoinColumns []JoinColumn `yaml:"join_columns,omitempty" json:"join_columns,omitempty"`
		MappedBy    string       `yaml:"mapped_by,omitempty" json:"mapped_by,omitempty"`
		InversedBy  string       `yaml:"inversed_by,omitempty" json:"inversed_by,omitempty"`
		// JoinTable is set on the owning side of a many-to-many.
		JoinTable *JoinTable `yaml:"join_table,omitempty" json:"join_table,omitempty"`
		IndexBy   string     `yaml:"index_by,omitempty" json:"index_by,omitempty"`
		Cascade   []string   `yaml:"cascade,omitempty" json:"cascade,omitempty"`
	}
)

// IsOwningSide reports whether the association holds the relationship
// metadata (join columns or join table).
func (a *Association) IsOwningSide() bool { return a.MappedBy == "" }

// CascadesAll reports whether cascade-all is set.
func (a *Association) CascadesAll() bool {
	for _, c := range a.Cascade {
		if c == CascadeAll {
			return true
		}
	}
	return false
}

// Field returns the field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Identifiers returns the identifier fields in declaration order.
func (e *Entity) Identifiers() []*Field {
	var ids []*Field
	for _, f := range e.Fields {
		if f.ID {
			ids = append(ids, f)
		}
	}
	return ids
}

// Association returns the association with the given name, or nil.
func (e *Entity) Association(name string) *Association {
	for _, a := range e.Associations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// HasAssociation reports whether an association with the name exists.
func (e *Entity) HasAssociation(name string) bool {
	return e.Association(name) != nil
}

// TypeName returns the entity name with its namespace separators removed.
func (e *Entity) TypeName() string { return TypeName(e.Name) }

// TypeName flattens a namespaced class name ("Billing.Invoice") into a
// single identifier ("BillingInvoice").
func TypeName(class string) string {
	return strings.ReplaceAll(class, NamespaceSeparator, "")
}

// NamespaceSeparator joins namespace segments in class names.
const NamespaceSeparator = "."
