package testutil

import "github.com/syssam/schemamap/schema"

// TableBuilder builds schema tables for tests.
type TableBuilder struct {
	t *schema.Table
}

// Table starts a table with the given name.
func Table(name string) *TableBuilder {
	return &TableBuilder{t: &schema.Table{Name: name}}
}

// Int adds a non-null integer column.
func (b *TableBuilder) Int(names ...string) *TableBuilder {
	for _, n := range names {
		b.t.Columns = append(b.t.Columns, &schema.Column{Name: n, Type: schema.Integer("integer")})
	}
	return b
}

// String adds a nullable varchar column of the given length.
func (b *TableBuilder) String(name string, length int) *TableBuilder {
	b.t.Columns = append(b.t.Columns, &schema.Column{
		Name:     name,
		Type:     schema.String("varchar"),
		Nullable: true,
		Length:   schema.Size(length),
	})
	return b
}

// Column adds an arbitrary column.
func (b *TableBuilder) Column(c *schema.Column) *TableBuilder {
	b.t.Columns = append(b.t.Columns, c)
	return b
}

// PK sets the primary key.
func (b *TableBuilder) PK(columns ...string) *TableBuilder {
	b.t.PrimaryKey = columns
	return b
}

// FK adds a foreign key from local to the columns of table ref.
// local and foreign are index aligned.
func (b *TableBuilder) FK(ref string, local []string, foreign []string) *TableBuilder {
	b.t.ForeignKeys = append(b.t.ForeignKeys, &schema.ForeignKey{
		Name:           "fk_" + b.t.Name + "_" + ref,
		LocalTable:     b.t.Name,
		ForeignTable:   ref,
		LocalColumns:   local,
		ForeignColumns: foreign,
	})
	return b
}

// Ref adds a single-column foreign key from column to ref.id.
func (b *TableBuilder) Ref(column, ref string) *TableBuilder {
	return b.FK(ref, []string{column}, []string{"id"})
}

// Build returns the table.
func (b *TableBuilder) Build() *schema.Table {
	return b.t
}
