package dialect

import (
	"fmt"
	"strings"
)

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Names lists the supported dialects.
var Names = []string{MySQL, SQLite, Postgres}

var aliases = map[string]string{
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"pg":         Postgres,
	"pgx":        Postgres,
}

// Normalize maps a dialect name or one of its common aliases to the
// canonical dialect name.
func Normalize(name string) (string, error) {
	if d, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("dialect: unsupported dialect %q (want one of %s)", name, strings.Join(Names, ", "))
}

// DriverName returns the database/sql driver name registered for the
// canonical dialect d.
func DriverName(d string) string {
	switch d {
	case SQLite:
		// modernc.org/sqlite
		return "sqlite"
	case Postgres:
		// github.com/lib/pq
		return "postgres"
	default:
		return d
	}
}

// DefaultSchema returns the schema that holds unqualified tables for the
// dialect, or "" when it depends on the connection (MySQL database name).
func DefaultSchema(d string) string {
	switch d {
	case SQLite:
		return "main"
	case Postgres:
		return "public"
	default:
		return ""
	}
}
