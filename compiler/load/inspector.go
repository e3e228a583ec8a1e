package load

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"strings"
	"sync"

	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/sqlite"

	// Drivers registered for dialect.DriverName.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemamap"
	"github.com/syssam/schemamap/compiler/reverse"
	"github.com/syssam/schemamap/dialect"
	"github.com/syssam/schemamap/dialect/sql"
	"github.com/syssam/schemamap/schema"
)

// Inspector lists and describes tables of a live database with atlas.
// The realm is inspected once, on first use.
type Inspector struct {
	drv         *sql.StatsDriver
	inspector   atlas.Inspector
	opts        *options
	foreignKeys bool
	owned       bool

	mu     sync.Mutex
	names  []string
	tables map[string]*atlas.Table
}

var _ reverse.Source = (*Inspector)(nil)

// Open connects to the database and returns an Inspector that owns the
// connection.
func Open(ctx context.Context, name, dsn string, opts ...Option) (*Inspector, error) {
	drv, err := sql.Open(name, dsn)
	if err != nil {
		return nil, err
	}
	if err := drv.Ping(ctx); err != nil {
		drv.Close()
		return nil, fmt.Errorf("load: ping %s: %w", drv.Dialect(), err)
	}
	i, err := newInspector(ctx, drv, opts)
	if err != nil {
		drv.Close()
		return nil, err
	}
	i.owned = true
	return i, nil
}

// NewInspector returns an Inspector over an open database handle. The
// caller keeps ownership of db.
func NewInspector(ctx context.Context, db *stdsql.DB, name string, opts ...Option) (*Inspector, error) {
	d, err := dialect.Normalize(name)
	if err != nil {
		return nil, err
	}
	return newInspector(ctx, sql.OpenDB(d, db), opts)
}

func newInspector(ctx context.Context, drv *sql.Driver, opts []Option) (*Inspector, error) {
	o := newOptions(opts)
	stats := sql.NewStatsDriver(drv,
		sql.WithSlowThreshold(o.slowQuery),
		sql.WithSlowQueryLog(o.log),
		sql.WithQueryLog(o.log),
	)
	i := &Inspector{drv: stats, opts: o}
	var err error
	if i.foreignKeys, err = ProbeForeignKeys(ctx, stats, drv.Dialect()); err != nil {
		return nil, err
	}
	if o.defaultSchema == "" {
		if o.defaultSchema, err = currentSchema(ctx, stats, drv.Dialect()); err != nil {
			return nil, err
		}
	}
	if i.inspector, err = openAtlas(drv.Dialect(), stats); err != nil {
		return nil, fmt.Errorf("load: open %s inspector: %w", drv.Dialect(), err)
	}
	return i, nil
}

func openAtlas(d string, ex sql.ExecQuerier) (atlas.Inspector, error) {
	switch d {
	case dialect.SQLite:
		return sqlite.Open(ex)
	case dialect.MySQL:
		return mysql.Open(ex)
	case dialect.Postgres:
		return postgres.Open(ex)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}

// Dialect returns the canonical dialect name of the connection.
func (i *Inspector) Dialect() string { return i.drv.Dialect() }

// DefaultSchema returns the schema whose tables are unqualified.
func (i *Inspector) DefaultSchema() string { return i.opts.defaultSchema }

// Stats returns the catalog query statistics collected so far.
func (i *Inspector) Stats() sql.StatsSnapshot { return i.drv.QueryStats().Stats() }

// SupportsForeignKeyConstraints reports the probed capability.
func (i *Inspector) SupportsForeignKeyConstraints() bool { return i.foreignKeys }

// ListTables returns the names of all base tables, schema-qualified when
// they live outside the default schema.
func (i *Inspector) ListTables(ctx context.Context) ([]string, error) {
	if err := i.inspect(ctx); err != nil {
		return nil, err
	}
	return append([]string(nil), i.names...), nil
}

// DescribeTable converts one inspected table to the snapshot model.
func (i *Inspector) DescribeTable(ctx context.Context, name string) (*schema.Table, error) {
	if err := i.inspect(ctx); err != nil {
		return nil, err
	}
	t, ok := i.tables[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("load: table %q not found", name)
	}
	return i.convert(name, t)
}

// Close releases the connection if the Inspector opened it.
func (i *Inspector) Close() error {
	i.opts.log.Debug("introspection finished", "dialect", i.Dialect(), "stats", i.Stats())
	if !i.owned {
		return nil
	}
	return i.drv.Close()
}

func (i *Inspector) inspect(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.tables != nil {
		return nil
	}
	realm, err := i.inspector.InspectRealm(ctx, &atlas.InspectRealmOption{
		Mode:    atlas.InspectSchemas | atlas.InspectTables,
		Schemas: i.opts.schemas,
	})
	if err != nil {
		return fmt.Errorf("load: inspect realm: %w", err)
	}
	tables := make(map[string]*atlas.Table)
	var names []string
	for _, s := range realm.Schemas {
		for _, t := range s.Tables {
			name := i.qualify(s.Name, t.Name)
			if _, ok := tables[strings.ToLower(name)]; ok {
				continue
			}
			tables[strings.ToLower(name)] = t
			names = append(names, name)
		}
	}
	i.names, i.tables = names, tables
	return nil
}

func (i *Inspector) qualify(schemaName, table string) string {
	if schemaName == "" || strings.EqualFold(schemaName, i.opts.defaultSchema) {
		return table
	}
	return schema.Qualify(schemaName, table)
}

func (i *Inspector) tableName(t *atlas.Table, fallback string) string {
	if t.Schema != nil {
		return i.qualify(t.Schema.Name, t.Name)
	}
	if q := schema.ParseQualifiedName(fallback); q.HasSchema() {
		return schema.Qualify(q.Schema, t.Name)
	}
	return t.Name
}

func (i *Inspector) convert(name string, t *atlas.Table) (*schema.Table, error) {
	name = i.tableName(t, name)
	out := &schema.Table{Name: name}
	for _, c := range t.Columns {
		col, err := convertColumn(name, c)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, col)
	}
	if pk := t.PrimaryKey; pk != nil {
		for _, p := range pk.Parts {
			if p.C == nil {
				return nil, fmt.Errorf("load: table %s: expression in primary key", name)
			}
			out.PrimaryKey = append(out.PrimaryKey, p.C.Name)
		}
	}
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == nil {
			continue
		}
		key := &schema.ForeignKey{
			Name:         fk.Symbol,
			LocalTable:   name,
			ForeignTable: i.tableName(fk.RefTable, name),
		}
		for _, c := range fk.Columns {
			key.LocalColumns = append(key.LocalColumns, c.Name)
		}
		for _, c := range fk.RefColumns {
			key.ForeignColumns = append(key.ForeignColumns, c.Name)
		}
		out.ForeignKeys = append(out.ForeignKeys, key)
	}
	return out, nil
}

var fixedStrings = map[string]bool{
	"char":             true,
	"character":        true,
	"nchar":            true,
	"bpchar":           true,
	"native character": true,
}

func convertColumn(table string, c *atlas.Column) (*schema.Column, error) {
	if c.Type == nil || c.Type.Type == nil {
		return nil, schemamap.NewUnsupportedTypeError(table, c.Name, "")
	}
	col := &schema.Column{Name: c.Name, Nullable: c.Type.Null}
	switch t := c.Type.Type.(type) {
	case *atlas.StringType:
		col.Type = schema.String(t.T)
		if t.Size > 0 {
			col.Length = schema.Size(t.Size)
		}
		col.Fixed = fixedStrings[strings.ToLower(t.T)]
	case *atlas.IntegerType:
		col.Type = schema.Integer(t.T)
		col.Unsigned = t.Unsigned
	case *atlas.UnsupportedType:
		return nil, schemamap.NewUnsupportedTypeError(table, c.Name, t.T)
	default:
		col.Type = schema.Other(typeName(c.Type.Raw))
	}
	return col, nil
}

// typeName strips modifiers from a raw type, e.g. "decimal(10,2)".
func typeName(raw string) string {
	if i := strings.IndexByte(raw, '('); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}
