// Package database provides SQLite connectivity for the Bakery service.
//
// This package manages:
//   - Database connection with WAL mode and enforced foreign keys
//   - Versioned schema migrations (up and down)
//   - Connection lifecycle and transaction helpers
//
// All queries use parameterised statements. The database file is created
// with 0600 permissions.
//
// Usage:
//
//	db, err := database.Open(database.ConfigFrom(cfg.Database))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql, and are embedded by the top-level migrations package.
package database
