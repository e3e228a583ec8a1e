package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/schemamap/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods. It is the
// connection type accepted by the atlas drivers.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Driver is a database/sql connection tagged with its dialect.
type Driver struct {
	ExecQuerier
	dialect string
}

// NewDriver creates a new Driver with the given ExecQuerier and dialect.
func NewDriver(dialect string, c ExecQuerier) *Driver {
	return &Driver{dialect: dialect, ExecQuerier: c}
}

// Open normalizes the dialect name and opens a database/sql handle with
// the driver registered for it.
func Open(name, source string) (*Driver, error) {
	d, err := dialect.Normalize(name)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(d), source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", d, err)
	}
	return NewDriver(d, db), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, db)
}

// DB returns the underlying *sql.DB instance, or nil if the driver
// wraps another ExecQuerier.
func (d Driver) DB() *sql.DB {
	db, _ := d.ExecQuerier.(*sql.DB)
	return db
}

// Dialect returns the canonical dialect name.
func (d Driver) Dialect() string {
	for _, name := range dialect.Names {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Ping verifies the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	if db := d.DB(); db != nil {
		return db.PingContext(ctx)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error {
	if db := d.DB(); db != nil {
		return db.Close()
	}
	return nil
}

// QueryString runs a query returning a single text value.
func QueryString(ctx context.Context, ex ExecQuerier, query string, args ...any) (string, error) {
	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("dialect/sql: query: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("dialect/sql: query: %w", err)
		}
		return "", fmt.Errorf("dialect/sql: query %q returned no rows", query)
	}
	var s sql.NullString
	if err := rows.Scan(&s); err != nil {
		return "", fmt.Errorf("dialect/sql: scan: %w", err)
	}
	return s.String, rows.Err()
}

type (
	// Result is an alias to sql.Result.
	Result = sql.Result
	// Rows is an alias to sql.Rows.
	Rows = sql.Rows
)
