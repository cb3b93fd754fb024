// Package logging provides structured logging for staffdb.
//
// It wraps log/slog with the defaults staffdb needs: a text or JSON
// handler, level filtering, and service/version fields on every record.
// Records go to stderr unless configured otherwise, leaving stdout to the
// query results.
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("rows inserted", "table", "person", "count", n)
//	logger.Error("query failed", "error", err)
package logging
