// Package database provides the embedded SQLite connection for staffdb.
//
// This package manages:
//   - A named, shared in-memory database pinned to one connection
//   - Driver selection between mattn/go-sqlite3 (cgo) and modernc.org/sqlite (pure Go)
//   - Schema initialisation from DDL files embedded by the schema package
//
// Nothing is persisted: the database disappears when Close is called or the
// process exits.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Driver: "sqlite3", Name: "staffdb"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.InitSchema(ctx); err != nil {
//	    return err
//	}
package database
