package reverse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// Classification partitions a snapshot into entity tables and join tables.
// It is immutable once built.
type Classification struct {
	// Entities holds the entity tables in snapshot order.
	Entities []*schema.Table
	// JoinTables holds the many-to-many link tables in snapshot order.
	JoinTables []*schema.Table
	// Skipped reports the tables that could not be classified.
	Skipped []mapping.Diagnostic

	byClass map[string]*schema.Table
	classOf map[string]string
	joins   map[string]bool
}

func newClassification() *Classification {
	return &Classification{
		byClass: make(map[string]*schema.Table),
		classOf: make(map[string]string),
		joins:   make(map[string]bool),
	}
}

// Classify partitions tables. A table without primary key is skipped, a
// table of join-table shape whose two keys share a schema is a join table,
// and everything else is an entity table keyed by its class name. When
// foreignKeys is false no table has foreign keys, and so no join table
// exists.
func Classify(tables []*schema.Table, namer *Namer, policy *ExpansionPolicy, foreignKeys bool) *Classification {
	c := newClassification()
	for _, t := range tables {
		if !t.HasPrimaryKey() {
			c.Skipped = append(c.Skipped, mapping.Diagnostic{
				Kind:    mapping.MissingPrimaryKey,
				Table:   t.Name,
				Message: "table has no primary key",
			})
			continue
		}
		if foreignKeys && isJoinTable(t, policy) {
			c.addJoinTable(t)
			continue
		}
		c.addEntity(t, namer.ClassName(t.Name))
	}
	return c
}

func (c *Classification) addJoinTable(t *schema.Table) {
	c.JoinTables = append(c.JoinTables, t)
	c.joins[strings.ToLower(t.Name)] = true
}

func (c *Classification) addEntity(t *schema.Table, class string) {
	if prev, ok := c.byClass[class]; ok {
		c.Skipped = append(c.Skipped, mapping.Diagnostic{
			Kind:    mapping.DuplicateClass,
			Entity:  class,
			Table:   t.Name,
			Message: fmt.Sprintf("class already mapped to table %s", prev.Name),
		})
		return
	}
	c.Entities = append(c.Entities, t)
	c.byClass[class] = t
	c.classOf[strings.ToLower(t.Name)] = class
}

// ClassNames returns the entity class names in snapshot order.
func (c *Classification) ClassNames() []string {
	names := make([]string, 0, len(c.Entities))
	for _, t := range c.Entities {
		names = append(names, c.classOf[strings.ToLower(t.Name)])
	}
	return names
}

// Table returns the entity table mapped to class.
func (c *Classification) Table(class string) (*schema.Table, bool) {
	t, ok := c.byClass[class]
	return t, ok
}

// ClassOf returns the class name of an entity table. Table names are
// matched case-insensitively.
func (c *Classification) ClassOf(table string) (string, bool) {
	class, ok := c.classOf[strings.ToLower(table)]
	return class, ok
}

// EntityTable returns the entity table with the given name, or nil.
func (c *Classification) EntityTable(table string) *schema.Table {
	class, ok := c.ClassOf(table)
	if !ok {
		return nil
	}
	return c.byClass[class]
}

// IsJoinTable reports whether the table was classified as a join table.
func (c *Classification) IsJoinTable(table string) bool {
	return c.joins[strings.ToLower(table)]
}

func isJoinTable(t *schema.Table, policy *ExpansionPolicy) bool {
	if !isJoinTableShape(t) {
		return false
	}
	a, b := t.ForeignKeys[0].ForeignTable, t.ForeignKeys[1].ForeignTable
	return isSchemaExpandable(policy, a, b) && sameSchema(a, b)
}

// isJoinTableShape reports whether t has exactly two foreign keys, no
// column outside of them, and a primary key made of their local columns.
func isJoinTableShape(t *schema.Table) bool {
	if len(t.ForeignKeys) != 2 || len(t.Columns) != len(t.ForeignKeys) {
		return false
	}
	fkColumns := schema.LocalColumns(t.ForeignKeys)
	pk := slices.Clone(t.PrimaryKey)
	slices.Sort(fkColumns)
	slices.Sort(pk)
	return slices.Equal(fkColumns, pk)
}

// isSchemaExpandable reports whether relationships may be inferred between
// a and b in both directions.
func isSchemaExpandable(policy *ExpansionPolicy, a, b string) bool {
	return policy.CanExpand(a, b) && policy.CanExpand(b, a)
}

func sameSchema(a, b string) bool {
	return schema.ParseQualifiedName(a).SameSchema(schema.ParseQualifiedName(b))
}

// isIdentityForeignKey reports whether fk from local to ref is the identity
// of local: it maps the whole primary key of local onto the whole primary
// key of ref.
func isIdentityForeignKey(local, ref *schema.Table, fk *schema.ForeignKey) bool {
	return schema.SameColumns(fk.ForeignColumns, ref.PrimaryKey) &&
		schema.SameColumns(fk.LocalColumns, local.PrimaryKey)
}

// isFakeInheritance reports whether fk from t points at a table that
// points back at t through its own primary key, with the back reference
// column named after t. Only used when foreign keys are not enforced.
func (c *Classification) isFakeInheritance(t *schema.Table, fk *schema.ForeignKey) bool {
	ref := c.EntityTable(fk.ForeignTable)
	if ref == nil {
		return false
	}
	name := strings.ToLower(localName(t.Name))
	for _, back := range ref.ForeignKeys {
		if !back.References(t.Name) || len(back.LocalColumns) == 0 {
			continue
		}
		if schema.SameColumns(back.LocalColumns, ref.PrimaryKey) &&
			stripID(strings.ToLower(back.LocalColumns[0])) == name {
			return true
		}
	}
	return false
}

// isDoubleOneToOne reports whether fk from candidate to t, which spans the
// primary key of candidate, is already captured as a one-to-one by a
// foreign key from t back to candidate.
func isDoubleOneToOne(t, candidate *schema.Table, fk *schema.ForeignKey) bool {
	if !schema.SameColumns(fk.LocalColumns, candidate.PrimaryKey) {
		return false
	}
	return slices.ContainsFunc(t.ForeignKeys, func(back *schema.ForeignKey) bool {
		return back.References(candidate.Name)
	})
}
