package reverse

import (
	"fmt"
	"slices"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// inverseSide maps the foreign keys of entity tables, the table itself
// included, that reference the table.
func (b *builder) inverseSide() {
	for _, candidate := range b.class.Entities {
		if !b.policy.CanExpand(candidate.Name, b.table.Name) {
			continue
		}
		for _, fk := range b.effectiveKeys(candidate) {
			if !fk.References(b.table.Name) {
				continue
			}
			switch {
			case isIdentityForeignKey(candidate, b.table, fk):
				b.inverseOneToOne(candidate, fk)
			case isDoubleOneToOne(b.table, candidate, fk):
				b.log.Debug("skipping one-to-many captured as one-to-one", "table", b.table.Name, "candidate", candidate.Name)
			default:
				b.oneToMany(candidate, fk)
			}
		}
		if b.foreignKeys {
			continue
		}
		for _, fk := range candidate.ForeignKeys {
			if fk.References(b.table.Name) && b.class.isFakeInheritance(candidate, fk) {
				b.inverseOneToOne(candidate, fk)
			}
		}
	}
}

func (b *builder) inverseOneToOne(candidate *schema.Table, fk *schema.ForeignKey) {
	target, _ := b.class.ClassOf(candidate.Name)
	b.register(&mapping.Association{
		Kind:         mapping.OneToOne,
		Name:         b.namer.FieldName(candidate.Name, localName(candidate.Name), true),
		TargetEntity: target,
		MappedBy:     b.owningFieldName(candidate, fk),
		Cascade:      []string{mapping.CascadeAll},
	})
}

// oneToMany maps fk as a collection of candidate rows. The collection is
// indexed by the primary key column of candidate that is not part of fk,
// when there is a single one. A name collision is resolved by appending the
// capitalized mappedBy name.
func (b *builder) oneToMany(candidate *schema.Table, fk *schema.ForeignKey) {
	target, _ := b.class.ClassOf(candidate.Name)
	a := &mapping.Association{
		Kind:         mapping.OneToMany,
		Name:         plural(b.namer.FieldName(candidate.Name, localName(candidate.Name), true)),
		TargetEntity: target,
		MappedBy:     b.owningFieldName(candidate, fk),
	}
	if len(candidate.PrimaryKey) == 1 {
		a.IndexBy = candidate.PrimaryKey[0]
	} else {
		rest := slices.DeleteFunc(slices.Clone(candidate.PrimaryKey), func(c string) bool {
			return slices.Contains(fk.LocalColumns, c)
		})
		a.Cascade = []string{mapping.CascadeAll}
		if len(rest) == 1 {
			a.IndexBy = rest[0]
		}
	}
	if b.taken[a.Name] {
		name := a.Name + ucfirst(a.MappedBy)
		if b.taken[name] {
			b.report(mapping.DuplicateAssociation, name, fmt.Sprintf("association %q to %s already exists", name, target))
			return
		}
		a.Name = name
	}
	b.register(a)
}
