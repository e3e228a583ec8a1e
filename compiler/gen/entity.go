package gen

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemamap/mapping"
)

// RenderEntity renders the Go struct of one entity: scalar fields with db
// and json tags, association fields referencing the target structs, and a
// TableName method.
func (g *Generator) RenderEntity(e *mapping.Entity) *jen.File {
	f := jen.NewFile(g.cfg.Package)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	name := e.TypeName()
	names := newNameSet()

	f.Commentf("%s is the %s entity mapped to table %q.", name, e.Name, e.Table)
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		for _, fd := range e.Fields {
			id := names.take(fieldIdent(fd))
			group.Id(id).Add(goType(fd)).Tag(fieldTags(fd))
		}
		for _, a := range e.Associations {
			target := jen.Op("*").Id(mapping.TypeName(a.TargetEntity))
			if a.Kind.IsToMany() {
				target = jen.Index().Add(target)
			}
			group.Comment(associationComment(a))
			group.Id(names.take(goName(a.Name))).Add(target).Tag(map[string]string{
				"db":   "-",
				"json": a.Name + ",omitempty",
			})
		}
	})

	f.Comment("TableName returns the name of the backing table.")
	f.Func().Params(jen.Op("*").Id(name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(e.Table)),
	)

	f.Commentf("%sColumns lists the mapped columns of %s in declaration order.", name, name)
	f.Var().Id(name + "Columns").Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
		for _, fd := range e.Fields {
			vals.Lit(fd.Column)
		}
	})
	return f
}

// fieldIdent names the struct field of a mapped column. Identifier fields
// that double as association keys share their mapped name with the
// association, so they are named after the column instead.
func fieldIdent(f *mapping.Field) string {
	if f.AssociationKey {
		return goName(f.Column)
	}
	return goName(f.Name)
}

func fieldTags(f *mapping.Field) map[string]string {
	json := f.Name
	if f.Nullable {
		json += ",omitempty"
	}
	return map[string]string{"db": f.Column, "json": json}
}

func associationComment(a *mapping.Association) string {
	switch {
	case a.MappedBy != "":
		return fmt.Sprintf("%s is the inverse %s side, mapped by %s.", goName(a.Name), a.Kind, a.MappedBy)
	case a.JoinTable != nil:
		return fmt.Sprintf("%s is the owning %s side through %s.", goName(a.Name), a.Kind, a.JoinTable.Name)
	default:
		return fmt.Sprintf("%s is the owning %s side.", goName(a.Name), a.Kind)
	}
}

// nameSet hands out unique Go identifiers within one struct.
type nameSet map[string]bool

func newNameSet() nameSet { return make(nameSet) }

func (s nameSet) take(name string) string {
	if name == "" {
		name = "Field"
	}
	unique := name
	for i := 2; s[unique]; i++ {
		unique = name + strconv.Itoa(i)
	}
	s[unique] = true
	return unique
}
