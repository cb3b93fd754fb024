package database

import "errors"

var (
	// ErrNameRequired is returned when the in-memory instance has no name.
	ErrNameRequired = errors.New("database: instance name is required")

	// ErrUnsupportedDriver is returned for drivers other than sqlite3 and sqlite.
	ErrUnsupportedDriver = errors.New("database: unsupported driver")

	// ErrSchemaNotRegistered is returned by InitSchema when no schema files are registered.
	ErrSchemaNotRegistered = errors.New("database: no schema registered")
)
