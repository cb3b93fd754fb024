// Package schema embeds the DDL for the person and department tables.
//
// Files are named NNN_table.sql and executed in NNN order by
// database.InitSchema.
package schema

import (
	"embed"

	"github.com/rybalchenkov4/staffdb/internal/infrastructure/database"
)

//go:embed *.sql
var schemaFS embed.FS

func init() {
	database.SchemaFS = schemaFS
	database.SchemaDir = "."
}
