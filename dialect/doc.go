// Package dialect names the database dialects schemamap can introspect.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL (driver github.com/lib/pq)
//   - MySQL: MySQL/MariaDB (driver github.com/go-sql-driver/mysql)
//   - SQLite: SQLite (driver modernc.org/sqlite)
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// User input such as "postgresql", "pg" or "sqlite3" is mapped to the
// canonical name with Normalize:
//
//	d, err := dialect.Normalize("sqlite3") // "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver wrapper with query statistics, used
//     as the connection handed to the atlas inspectors.
package dialect
