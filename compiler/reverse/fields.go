package reverse

import (
	"slices"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// fields maps the columns of the table: identifiers first, then regular
// columns. Columns of mapped foreign keys surface as associations and are
// skipped, unless they belong to the primary key.
func (b *builder) fields() {
	ids, regular := b.buildFields(b.table)
	b.entity.Fields = append(ids, regular...)
	if b.autoIncrement(ids) {
		b.entity.IDGenerator = mapping.GeneratorAuto
	}
}

func (i *Inferencer) buildFields(t *schema.Table) (ids, regular []*mapping.Field) {
	fkColumns := schema.LocalColumns(i.mappedKeys(t))
	for _, c := range t.Columns {
		id := t.IsPrimaryKeyColumn(c.Name)
		fk := slices.Contains(fkColumns, c.Name)
		if fk && !id {
			continue
		}
		f := &mapping.Field{
			Name:           i.namer.FieldName(t.Name, c.Name, fk),
			Column:         c.Name,
			Type:           c.Type.Name,
			Kind:           c.Type.Kind,
			Nullable:       c.Nullable,
			ID:             id,
			AssociationKey: id && fk,
		}
		switch c.Type.Kind {
		case schema.KindString:
			if c.Length != nil {
				f.Length = schema.Size(*c.Length)
			}
			f.Fixed = boolPtr(c.Fixed)
		case schema.KindInteger:
			f.Unsigned = boolPtr(c.Unsigned)
		}
		if id {
			ids = append(ids, f)
		} else {
			regular = append(regular, f)
		}
	}
	return ids, regular
}

// autoIncrement reports whether the single integer identifier is generated
// by the database. It is not when a foreign key covers the primary key.
func (b *builder) autoIncrement(ids []*mapping.Field) bool {
	if len(ids) != 1 || ids[0].Kind != schema.KindInteger {
		return false
	}
	return !slices.ContainsFunc(b.effectiveKeys(b.table), func(fk *schema.ForeignKey) bool {
		return schema.ContainsColumns(fk.LocalColumns, b.table.PrimaryKey)
	})
}

// scalarNames returns the names of the fields of t that are not
// association keys.
func (i *Inferencer) scalarNames(t *schema.Table) map[string]bool {
	ids, regular := i.buildFields(t)
	names := make(map[string]bool, len(ids)+len(regular))
	for _, f := range append(ids, regular...) {
		if !f.AssociationKey {
			names[f.Name] = true
		}
	}
	return names
}

func boolPtr(v bool) *bool { return &v }
