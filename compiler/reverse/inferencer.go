package reverse

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/schemamap"
	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// Source lists and describes the tables of a database.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, name string) (*schema.Table, error)
	SupportsForeignKeyConstraints() bool
}

// Inferencer derives entity mappings from a classified schema snapshot.
// All methods are safe for concurrent use.
type Inferencer struct {
	cfg         *Config
	log         *slog.Logger
	namer       *Namer
	policy      *ExpansionPolicy
	foreignKeys bool
	class       *Classification
	diagnostics []mapping.Diagnostic
}

// New classifies tables and returns an Inferencer over them. Foreign key
// constraints are assumed to be supported unless WithForeignKeyConstraints
// says otherwise.
func New(tables []*schema.Table, opts ...Option) (*Inferencer, error) {
	i, err := newInferencer(true, opts...)
	if err != nil {
		return nil, err
	}
	i.class = Classify(i.filter(tables), i.namer, i.policy, i.foreignKeys)
	i.diagnostics = append(i.diagnostics, i.class.Skipped...)
	return i, nil
}

// NewWithTables returns an Inferencer over a pre-classified snapshot,
// bypassing join table detection.
func NewWithTables(entities, joinTables []*schema.Table, opts ...Option) (*Inferencer, error) {
	i, err := newInferencer(true, opts...)
	if err != nil {
		return nil, err
	}
	c := newClassification()
	for _, t := range i.filter(entities) {
		if !t.HasPrimaryKey() {
			c.Skipped = append(c.Skipped, mapping.Diagnostic{
				Kind:    mapping.MissingPrimaryKey,
				Table:   t.Name,
				Message: "table has no primary key",
			})
			continue
		}
		c.addEntity(t, i.namer.ClassName(t.Name))
	}
	for _, t := range i.filter(joinTables) {
		c.addJoinTable(t)
	}
	i.class = c
	i.diagnostics = append(i.diagnostics, c.Skipped...)
	return i, nil
}

// Load builds the snapshot through src and classifies it. A table that
// cannot be described is dropped and reported as a diagnostic.
func Load(ctx context.Context, src Source, opts ...Option) (*Inferencer, error) {
	i, err := newInferencer(src.SupportsForeignKeyConstraints(), opts...)
	if err != nil {
		return nil, err
	}
	names, err := src.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("reverse: list tables: %w", err)
	}
	tables := make([]*schema.Table, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := src.DescribeTable(ctx, name)
		if err != nil {
			i.log.Debug("dropping table", "table", name, "error", err)
			i.diagnostics = append(i.diagnostics, mapping.Diagnostic{
				Kind:    mapping.IntrospectionFailure,
				Table:   name,
				Message: schemamap.NewIntrospectionError(name, err).Error(),
			})
			continue
		}
		tables = append(tables, t)
	}
	i.class = Classify(i.filter(tables), i.namer, i.policy, i.foreignKeys)
	i.diagnostics = append(i.diagnostics, i.class.Skipped...)
	return i, nil
}

func newInferencer(foreignKeys bool, opts ...Option) (*Inferencer, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.ForeignKeys != nil {
		foreignKeys = *cfg.ForeignKeys
	}
	return &Inferencer{
		cfg:         cfg,
		log:         cfg.Logger,
		namer:       NewNamer(cfg),
		policy:      NewExpansionPolicy(cfg.CrossSchema),
		foreignKeys: foreignKeys,
	}, nil
}

func (i *Inferencer) filter(tables []*schema.Table) []*schema.Table {
	if i.cfg.SchemaFilter == "" {
		return tables
	}
	want := schema.QualifiedName{Schema: i.cfg.SchemaFilter}
	return slices.DeleteFunc(slices.Clone(tables), func(t *schema.Table) bool {
		qn := t.QualifiedName()
		return qn.HasSchema() && !qn.SameSchema(want)
	})
}

// ClassNames returns the names of all inferred entity classes.
func (i *Inferencer) ClassNames() []string {
	return i.class.ClassNames()
}

// IsTransient reports whether class is hand-authored. Every class derived
// by the inferencer is reverse-engineered, so it always reports true.
func (i *Inferencer) IsTransient(string) bool {
	return true
}

// Classification returns the classification of the snapshot.
func (i *Inferencer) Classification() *Classification {
	return i.class
}

// Diagnostics returns the conditions met while loading and classifying
// the snapshot.
func (i *Inferencer) Diagnostics() []mapping.Diagnostic {
	return slices.Clone(i.diagnostics)
}

// ForeignKeys reports whether declared foreign keys are taken into account.
func (i *Inferencer) ForeignKeys() bool {
	return i.foreignKeys
}

// Map derives the mapping of one entity class.
func (i *Inferencer) Map(class string) (*mapping.Entity, error) {
	t, ok := i.class.Table(class)
	if !ok {
		return nil, schemamap.NewUnknownEntityError(class)
	}
	return i.derive(t, class, true), nil
}

// MapAll derives the mappings of all entity classes, in ClassNames order.
func (i *Inferencer) MapAll(ctx context.Context) ([]*mapping.Entity, error) {
	classes := i.ClassNames()
	entities := make([]*mapping.Entity, len(classes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx, class := range classes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := i.Map(class)
			if err != nil {
				return err
			}
			entities[idx] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entities, nil
}

// derive builds the mapping of t. When resolve is set, the inversedBy
// names of owning to-one associations are looked up in the derivation
// of their targets.
func (i *Inferencer) derive(t *schema.Table, class string, resolve bool) *mapping.Entity {
	b := &builder{
		Inferencer: i,
		table:      t,
		entity: &mapping.Entity{
			Name:            class,
			Table:           t.Name,
			RepositoryClass: i.cfg.RepositoryClass,
			IDGenerator:     mapping.GeneratorNone,
		},
		taken: make(map[string]bool),
	}
	b.fields()
	b.manyToMany()
	b.owningSide(resolve)
	b.inverseSide()
	return b.entity
}

// builder accumulates the mapping of one entity.
type builder struct {
	*Inferencer
	table  *schema.Table
	entity *mapping.Entity
	taken  map[string]bool
}

// register adds a unless its name is already taken.
func (b *builder) register(a *mapping.Association) bool {
	if b.taken[a.Name] {
		b.report(mapping.DuplicateAssociation, a.Name, fmt.Sprintf("association %q to %s already exists", a.Name, a.TargetEntity))
		return false
	}
	b.taken[a.Name] = true
	b.entity.Associations = append(b.entity.Associations, a)
	return true
}

func (b *builder) report(kind mapping.DiagnosticKind, field, msg string) {
	d := mapping.Diagnostic{
		Kind:    kind,
		Entity:  b.entity.Name,
		Table:   b.table.Name,
		Field:   field,
		Message: msg,
	}
	b.log.Debug("inference diagnostic", "kind", kind, "entity", d.Entity, "field", field, "message", msg)
	b.entity.Diagnostics = append(b.entity.Diagnostics, d)
}

// effectiveKeys returns the foreign keys of t taken into account.
func (i *Inferencer) effectiveKeys(t *schema.Table) []*schema.ForeignKey {
	if !i.foreignKeys {
		return nil
	}
	return t.ForeignKeys
}

// mappedKeys returns the foreign keys of t that become owning
// associations: effective keys whose target is an entity table reachable
// from t, or fake inheritance keys when foreign keys are not enforced.
func (i *Inferencer) mappedKeys(t *schema.Table) []*schema.ForeignKey {
	var fks []*schema.ForeignKey
	if !i.foreignKeys {
		for _, fk := range t.ForeignKeys {
			if i.class.isFakeInheritance(t, fk) {
				fks = append(fks, fk)
			}
		}
		return fks
	}
	for _, fk := range i.effectiveKeys(t) {
		if i.class.EntityTable(fk.ForeignTable) != nil && i.policy.CanExpand(t.Name, fk.ForeignTable) {
			fks = append(fks, fk)
		}
	}
	return fks
}
