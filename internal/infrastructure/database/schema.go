package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// schemaFilenameParts is the number of parts in a schema filename.
// Format: NNN_table.sql
const schemaFilenameParts = 2

// SchemaFS should be set by the schema package to the embedded DDL files.
//
//	//go:embed *.sql
//	var schemaFS embed.FS
//
//	func init() {
//	    database.SchemaFS = schemaFS
//	}
var SchemaFS fs.FS

// SchemaDir is the directory within SchemaFS containing the DDL files.
var SchemaDir = "."

// Statement is one DDL statement loaded from SchemaFS.
type Statement struct {
	// Order is the numeric filename prefix; statements run in ascending order.
	Order string

	// Table is the table the statement creates (the filename suffix).
	Table string

	SQL string
}

// InitSchema executes every registered DDL statement in filename order.
//
// The statements are plain CREATE TABLE: running InitSchema twice on the
// same database fails with "table already exists". There is no version
// bookkeeping; the first failure is logged and returned.
func (db *DB) InitSchema(ctx context.Context) error {
	statements, err := LoadSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	if len(statements) == 0 {
		return ErrSchemaNotRegistered
	}

	for _, s := range statements {
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			if db.logger != nil {
				db.logger.Error("table creation failed", "table", s.Table, "error", err)
			}
			return fmt.Errorf("creating table %s: %w", s.Table, err)
		}
		if db.logger != nil {
			db.logger.Info("table created", "table", s.Table)
		}
	}

	return nil
}

// LoadSchema reads the DDL statements from SchemaFS, ordered by filename.
func LoadSchema() ([]Statement, error) {
	if SchemaFS == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(SchemaFS, SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory: %w", err)
	}

	var statements []Statement
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		order, table, ok := parseSchemaFilename(entry.Name())
		if !ok {
			continue
		}

		sqlText, err := fs.ReadFile(SchemaFS, path.Join(SchemaDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		statements = append(statements, Statement{
			Order: order,
			Table: table,
			SQL:   string(sqlText),
		})
	}

	sort.Slice(statements, func(i, j int) bool {
		return statements[i].Order < statements[j].Order
	})

	return statements, nil
}

// parseSchemaFilename splits "001_person.sql" into ("001", "person").
func parseSchemaFilename(name string) (order, table string, ok bool) {
	if !strings.HasSuffix(name, ".sql") {
		return "", "", false
	}

	parts := strings.SplitN(strings.TrimSuffix(name, ".sql"), "_", schemaFilenameParts)
	if len(parts) != schemaFilenameParts || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
