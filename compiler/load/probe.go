package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/schemamap/dialect"
	"github.com/syssam/schemamap/dialect/sql"
)

// ProbeForeignKeys reports whether the database enforces foreign key
// constraints. MySQL tables created with the MyISAM engine silently drop
// foreign keys, so the default storage engine decides there.
func ProbeForeignKeys(ctx context.Context, ex sql.ExecQuerier, d string) (bool, error) {
	switch d {
	case dialect.SQLite, dialect.Postgres:
		return true, nil
	case dialect.MySQL:
		engine, err := sql.QueryString(ctx, ex, "SELECT @@default_storage_engine")
		if err != nil {
			return false, fmt.Errorf("load: probe foreign keys: %w", err)
		}
		return !strings.EqualFold(engine, "MyISAM"), nil
	default:
		return false, fmt.Errorf("load: probe foreign keys: unsupported dialect %q", d)
	}
}

// currentSchema returns the schema unqualified tables live in.
func currentSchema(ctx context.Context, ex sql.ExecQuerier, d string) (string, error) {
	var query string
	switch d {
	case dialect.MySQL:
		query = "SELECT DATABASE()"
	case dialect.Postgres:
		query = "SELECT current_schema()"
	default:
		return dialect.DefaultSchema(d), nil
	}
	name, err := sql.QueryString(ctx, ex, query)
	if err != nil {
		return "", fmt.Errorf("load: current schema: %w", err)
	}
	if name == "" {
		name = dialect.DefaultSchema(d)
	}
	return name, nil
}
