package schema

import (
	"fmt"
	"slices"
	"strings"
)

// ColumnKind is the semantic type family of a column.
type ColumnKind uint8

// Column kinds.
const (
	KindOther ColumnKind = iota
	KindString
	KindInteger
)

var kindNames = [...]string{
	KindOther:   "other",
	KindString:  "string",
	KindInteger: "integer",
}

// String returns the name of the kind.
func (k ColumnKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ColumnKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k ColumnKind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("schema: invalid column kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColumnKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = ColumnKind(i)
			return nil
		}
	}
	return fmt.Errorf("schema: unknown column kind %q", text)
}

// ColumnType holds the kind of a column and its database type name.
type ColumnType struct {
	Kind ColumnKind `yaml:"kind" msgpack:"kind"`
	// Name is the lower-case database type name, e.g. "varchar" or "bigint".
	Name string `yaml:"name" msgpack:"name"`
}

// String returns a string column type with the given database type name.
func String(name string) ColumnType { return ColumnType{Kind: KindString, Name: strings.ToLower(name)} }

// Integer returns an integer column type with the given database type name.
func Integer(name string) ColumnType { return ColumnType{Kind: KindInteger, Name: strings.ToLower(name)} }

// Other returns a column type that is neither string nor integer.
func Other(name string) ColumnType { return ColumnType{Kind: KindOther, Name: strings.ToLower(name)} }

// Size returns a pointer to n. It is a helper for Column.Length literals.
func Size(n int) *int { return &n }

// Column is a table column.
type Column struct {
	Name     string     `yaml:"name" msgpack:"name"`
	Type     ColumnType `yaml:"type" msgpack:"type"`
	Nullable bool       `yaml:"nullable,omitempty" msgpack:"nullable,omitempty"`
	// Length and Fixed are meaningful for KindString only.
	Length *int `yaml:"length,omitempty" msgpack:"length,omitempty"`
	Fixed  bool `yaml:"fixed,omitempty" msgpack:"fixed,omitempty"`
	// Unsigned is meaningful for KindInteger only.
	Unsigned bool `yaml:"unsigned,omitempty" msgpack:"unsigned,omitempty"`
}

// ForeignKey is a foreign-key constraint. LocalColumns[i] references
// ForeignColumns[i].
type ForeignKey struct {
	Name           string   `yaml:"name,omitempty" msgpack:"name,omitempty"`
	LocalTable     string   `yaml:"local_table" msgpack:"local_table"`
	ForeignTable   string   `yaml:"foreign_table" msgpack:"foreign_table"`
	LocalColumns   []string `yaml:"local_columns" msgpack:"local_columns"`
	ForeignColumns []string `yaml:"foreign_columns" msgpack:"foreign_columns"`
}

// References reports whether the key points at the given table.
// Table names are compared case-insensitively.
func (fk *ForeignKey) References(table string) bool {
	return strings.EqualFold(fk.ForeignTable, table)
}

// Table is one table of a snapshot.
type Table struct {
	Name        string        `yaml:"name" msgpack:"name"`
	Columns     []*Column     `yaml:"columns" msgpack:"columns"`
	PrimaryKey  []string      `yaml:"primary_key,omitempty" msgpack:"primary_key,omitempty"`
	ForeignKeys []*ForeignKey `yaml:"foreign_keys,omitempty" msgpack:"foreign_keys,omitempty"`
}

// QualifiedName returns the parsed table name.
func (t *Table) QualifiedName() QualifiedName { return ParseQualifiedName(t.Name) }

// HasPrimaryKey reports whether the table declares a primary key.
func (t *Table) HasPrimaryKey() bool { return len(t.PrimaryKey) > 0 }

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsPrimaryKeyColumn reports whether the column is part of the primary key.
func (t *Table) IsPrimaryKeyColumn(name string) bool {
	return slices.Contains(t.PrimaryKey, name)
}

// ForeignKeyColumns returns the union of the local columns of all foreign
// keys, in declaration order.
func (t *Table) ForeignKeyColumns() []string {
	return LocalColumns(t.ForeignKeys)
}

// LocalColumns returns the union of the local columns of fks, in order.
func LocalColumns(fks []*ForeignKey) []string {
	var cols []string
	for _, fk := range fks {
		for _, c := range fk.LocalColumns {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// SameColumns reports whether a and b hold the same set of column names,
// regardless of order.
func SameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// ContainsColumns reports whether every column of sub is in set.
func ContainsColumns(set, sub []string) bool {
	for _, c := range sub {
		if !slices.Contains(set, c) {
			return false
		}
	}
	return true
}
