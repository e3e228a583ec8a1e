package reverse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// manyToMany maps the join tables that reference the table. The entity
// owns the association when the first column of the join table belongs to
// its own key. Only the first key of a join table pointing at the table is
// considered.
func (b *builder) manyToMany() {
	for _, jt := range b.class.JoinTables {
		for idx, my := range jt.ForeignKeys {
			if !my.References(b.table.Name) {
				continue
			}
			other := otherKey(jt.ForeignKeys, idx)
			if other == nil || len(my.LocalColumns) == 0 {
				b.report(mapping.InsufficientJoinTableInfo, "", fmt.Sprintf("join table %s has no usable pair of foreign keys", jt.Name))
				break
			}
			target, ok := b.class.ClassOf(other.ForeignTable)
			if !ok {
				b.report(mapping.UnresolvedReference, "", fmt.Sprintf("join table %s references unmapped table %s", jt.Name, other.ForeignTable))
				break
			}
			a := &mapping.Association{
				Kind:         mapping.ManyToMany,
				Name:         plural(b.namer.FieldName(jt.Name, other.LocalColumns[0], true)),
				TargetEntity: target,
			}
			back := plural(b.namer.FieldName(jt.Name, my.LocalColumns[0], true))
			if len(jt.Columns) > 0 && slices.Contains(my.LocalColumns, jt.Columns[0].Name) {
				a.InversedBy = back
				a.JoinTable = &mapping.JoinTable{
					Name:               strings.ToLower(jt.Name),
					JoinColumns:        joinColumns(my),
					InverseJoinColumns: joinColumns(other),
				}
			} else {
				a.MappedBy = back
			}
			if len(other.ForeignColumns) == 1 {
				a.IndexBy = other.ForeignColumns[0]
			}
			b.register(a)
			break
		}
	}
}

// otherKey returns the first key of fks at a position other than idx.
func otherKey(fks []*schema.ForeignKey, idx int) *schema.ForeignKey {
	for i, fk := range fks {
		if i != idx && len(fk.LocalColumns) > 0 {
			return fk
		}
	}
	return nil
}

func joinColumns(fk *schema.ForeignKey) []mapping.JoinColumn {
	cols := make([]mapping.JoinColumn, 0, len(fk.LocalColumns))
	for i, c := range fk.LocalColumns {
		jc := mapping.JoinColumn{Name: c}
		if i < len(fk.ForeignColumns) {
			jc.ReferencedColumnName = fk.ForeignColumns[i]
		}
		cols = append(cols, jc)
	}
	return cols
}
