package graphql

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/schemamap/compiler/gen"
	"github.com/syssam/schemamap/mapping"
)

// Built-in GraphQL scalars.
const (
	ScalarID      = "ID"
	ScalarInt     = "Int"
	ScalarFloat   = "Float"
	ScalarString  = "String"
	ScalarBoolean = "Boolean"
)

// Custom scalars emitted for column types with no built-in equivalent.
const (
	ScalarTime = "Time"
	ScalarMap  = "Map"
)

// NodeInterface is the Relay node interface name.
const NodeInterface = "Node"

var builtins = map[string]bool{
	ScalarID:      true,
	ScalarInt:     true,
	ScalarFloat:   true,
	ScalarString:  true,
	ScalarBoolean: true,
}

// Config holds the SDL export settings.
type Config struct {
	// IDType maps single-column identifiers to the ID scalar.
	IDType bool
	// NodeInterface declares the Node interface and makes every type
	// identified by a single "id" field implement it.
	NodeInterface bool
	// MapScalar overrides the scalar of a field. An empty result falls
	// back to the default mapping.
	MapScalar func(*mapping.Field) string
}

// Option configures a Generator.
type Option func(*Config) error

// WithIDType toggles mapping identifiers to ID.
func WithIDType(enabled bool) Option {
	return func(c *Config) error {
		c.IDType = enabled
		return nil
	}
}

// WithNodeInterface toggles the Relay Node interface.
func WithNodeInterface(enabled bool) Option {
	return func(c *Config) error {
		c.NodeInterface = enabled
		return nil
	}
}

// WithMapScalarFunc sets a custom field to scalar mapping.
func WithMapScalarFunc(fn func(*mapping.Field) string) Option {
	return func(c *Config) error {
		if fn == nil {
			return fmt.Errorf("graphql: nil scalar mapping function")
		}
		c.MapScalar = fn
		return nil
	}
}

// Generator renders entity mappings as a GraphQL schema document.
type Generator struct {
	config Config
}

// NewGenerator returns a Generator. Identifiers map to ID by default.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{config: Config{IDType: true}}
	for _, opt := range opts {
		if err := opt(&g.config); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Config returns the generator settings.
func (g *Generator) Config() Config { return g.config }

// Schema returns the SDL document of the entities with default settings.
func Schema(entities []*mapping.Entity) *ast.SchemaDocument {
	g, _ := NewGenerator()
	return g.Schema(entities)
}

// Write formats the SDL of the entities with default settings.
func Write(w io.Writer, entities []*mapping.Entity) error {
	g, _ := NewGenerator()
	return g.Write(w, entities)
}

// Write formats the SDL document of the entities to w.
func (g *Generator) Write(w io.Writer, entities []*mapping.Entity) error {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatSchemaDocument(g.Schema(entities))
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("graphql: write schema: %w", err)
	}
	return nil
}

// Schema builds one object type per entity. Associations to entities
// outside the set are left out.
func (g *Generator) Schema(entities []*mapping.Entity) *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}
	known := make(map[string]bool, len(entities))
	types := make(map[string]bool, len(entities))
	for _, e := range entities {
		known[e.Name] = true
		types[e.TypeName()] = true
	}
	custom := make(map[string]bool)
	var defs ast.DefinitionList
	for _, e := range entities {
		def := g.object(e, known)
		for _, f := range def.Fields {
			if name := f.Type.Name(); !builtins[name] && !types[name] {
				custom[name] = true
			}
		}
		defs = append(defs, def)
	}
	scalars := make([]string, 0, len(custom))
	for name := range custom {
		scalars = append(scalars, name)
	}
	slices.Sort(scalars)
	for _, name := range scalars {
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: name})
	}
	if g.config.NodeInterface {
		doc.Definitions = append(doc.Definitions, &ast.Definition{
			Kind:        ast.Interface,
			Name:        NodeInterface,
			Description: "An object with a globally unique ID.",
			Fields: ast.FieldList{
				{Name: "id", Type: ast.NonNullNamedType(ScalarID, nil)},
			},
		})
	}
	doc.Definitions = append(doc.Definitions, defs...)
	return doc
}

func (g *Generator) object(e *mapping.Entity, known map[string]bool) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        e.TypeName(),
		Description: fmt.Sprintf("%s is mapped to table %s.", e.Name, e.Table),
	}
	ids := e.Identifiers()
	single := len(ids) == 1
	assocs := make(map[string]bool, len(e.Associations))
	for _, a := range e.Associations {
		if known[a.TargetEntity] {
			assocs[a.Name] = true
		}
	}
	seen := make(map[string]bool)
	for _, f := range e.Fields {
		// The association exposes the key column.
		if (f.AssociationKey && assocs[f.Name]) || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		typ := g.scalar(f, single)
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: f.Name,
			Type: &ast.Type{NamedType: typ, NonNull: !f.Nullable},
		})
	}
	if g.config.NodeInterface && g.config.IDType && single && ids[0].Name == "id" && !ids[0].AssociationKey {
		def.Interfaces = []string{NodeInterface}
	}
	for _, a := range e.Associations {
		if !known[a.TargetEntity] || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		target := mapping.TypeName(a.TargetEntity)
		typ := ast.NamedType(target, nil)
		if a.Kind.IsToMany() {
			typ = ast.NonNullListType(ast.NonNullNamedType(target, nil), nil)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{Name: a.Name, Type: typ})
	}
	return def
}

// scalar returns the GraphQL scalar of a field.
func (g *Generator) scalar(f *mapping.Field, single bool) string {
	if g.config.MapScalar != nil {
		if s := g.config.MapScalar(f); s != "" {
			return s
		}
	}
	if f.ID && single && g.config.IDType {
		return ScalarID
	}
	switch gen.KindOf(f) {
	case gen.GoInt64, gen.GoUint64:
		return ScalarInt
	case gen.GoFloat64:
		return ScalarFloat
	case gen.GoBool:
		return ScalarBoolean
	case gen.GoTime:
		return ScalarTime
	case gen.GoJSON:
		return ScalarMap
	default:
		return ScalarString
	}
}
