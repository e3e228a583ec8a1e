package reverse

import (
	"fmt"
	"strings"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// owningSide maps the foreign keys of the table. A key that is the identity
// of the table is a one-to-one, any other key a many-to-one. Without
// foreign key support only fake inheritance keys are mapped.
func (b *builder) owningSide(resolve bool) {
	if !b.foreignKeys {
		for _, fk := range b.table.ForeignKeys {
			if b.class.isFakeInheritance(b.table, fk) {
				b.owning(fk, mapping.OneToOne, resolve)
			}
		}
		return
	}
	for _, fk := range b.table.ForeignKeys {
		ref := b.class.EntityTable(fk.ForeignTable)
		switch {
		case ref == nil:
			b.report(mapping.UnresolvedReference, "", fmt.Sprintf("foreign key references unmapped table %s", fk.ForeignTable))
		case !b.policy.CanExpand(b.table.Name, ref.Name):
			b.report(mapping.CrossSchemaDenied, "", fmt.Sprintf("relationship to %s crosses schemas", ref.Name))
		case isIdentityForeignKey(b.table, ref, fk):
			b.owning(fk, mapping.OneToOne, resolve)
		default:
			b.owning(fk, mapping.ManyToOne, resolve)
		}
	}
}

func (b *builder) owning(fk *schema.ForeignKey, kind mapping.AssociationKind, resolve bool) {
	ref := b.class.EntityTable(fk.ForeignTable)
	if ref == nil {
		return
	}
	target, _ := b.class.ClassOf(ref.Name)
	a := &mapping.Association{
		Kind:         kind,
		Name:         b.owningFieldName(b.table, fk),
		TargetEntity: target,
		JoinColumns:  joinColumns(fk),
	}
	if resolve {
		a.InversedBy = b.inverseOf(ref, b.entity.Name, a.Name)
	}
	b.register(a)
}

// owningFieldName returns the name of the association mapping fk on t.
// It is the field name of the pivot column of the key, suffixed with "2"
// when a scalar field already uses it.
func (i *Inferencer) owningFieldName(t *schema.Table, fk *schema.ForeignKey) string {
	name := i.namer.FieldName(t.Name, pivotColumn(fk), true)
	if i.scalarNames(t)[name] {
		name += "2"
	}
	return name
}

// pivotColumn returns the column naming a foreign key: its single column,
// the column named after the referenced table, or its first column.
func pivotColumn(fk *schema.ForeignKey) string {
	if len(fk.LocalColumns) == 1 {
		return fk.LocalColumns[0]
	}
	ref := localName(fk.ForeignTable)
	for _, c := range fk.LocalColumns {
		if strings.EqualFold(c, ref) {
			return c
		}
	}
	if len(fk.LocalColumns) == 0 {
		return ""
	}
	return fk.LocalColumns[0]
}

// inverseOf returns the name of the association of ref that targets class
// and is mapped by its field, or "" when ref does not map the inverse side.
func (b *builder) inverseOf(ref *schema.Table, class, field string) string {
	refClass, _ := b.class.ClassOf(ref.Name)
	for _, a := range b.derive(ref, refClass, false).Associations {
		if a.TargetEntity == class && a.MappedBy == field {
			return a.Name
		}
	}
	return ""
}
