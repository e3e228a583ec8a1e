// Package sql wraps database/sql connections for schema introspection.
//
// A Driver pairs a connection with its canonical dialect name; a
// StatsDriver adds query counters, slow query detection and per-statement
// debug logging. Both satisfy the ExecQuerier interface expected by the
// atlas inspectors:
//
//	drv, err := sql.OpenWithStats("sqlite3", "file:app.db",
//	    sql.WithSlowThreshold(50*time.Millisecond),
//	    sql.WithSlowQueryLog(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
//	inspector, err := sqlite.Open(drv)
//	...
//	logger.Debug("introspection done", "stats", drv.QueryStats().Stats())
package sql
