package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported embedded database drivers.
const (
	// DriverMattn is the cgo SQLite driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"

	// DriverModernc is the pure-Go SQLite driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"
)

// Sample rows are inserted with one multi-row statement per table, so the
// row counts are bounded by SQLite's host parameter limit.
const (
	// maxSQLVariables is SQLITE_MAX_VARIABLE_NUMBER in both bundled drivers.
	maxSQLVariables = 32766

	departmentColumns = 2
	personColumns     = 5

	// MaxDepartments is the largest department count one INSERT can carry.
	MaxDepartments = maxSQLVariables / departmentColumns

	// MaxPersons is the largest person count one INSERT can carry.
	MaxPersons = maxSQLVariables / personColumns
)

// Config is the root configuration structure for staffdb.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Sample   SampleConfig   `yaml:"sample"`
	Queries  QueriesConfig  `yaml:"queries"`
	Logging  LoggingConfig  `yaml:"logging"`
	Report   ReportConfig   `yaml:"report"`
}

// DatabaseConfig contains embedded SQLite settings.
type DatabaseConfig struct {
	// Driver selects the database/sql driver: "sqlite3" or "sqlite".
	Driver string `yaml:"driver"`

	// Name identifies the in-memory database instance. The instance exists
	// only while the connection is open.
	Name string `yaml:"name"`

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`
}

// SampleConfig controls the generated sample rows.
type SampleConfig struct {
	Departments int `yaml:"departments"`
	Persons     int `yaml:"persons"`

	// Seed for the random source. Zero picks a fresh seed on every run.
	Seed uint64 `yaml:"seed"`
}

// QueriesConfig holds the arguments of the fixed query sequence.
type QueriesConfig struct {
	// Age is kept as text; it is parsed by the names-by-age query itself.
	Age           string `yaml:"age"`
	PersonID      int64  `yaml:"person_id"`
	ActivateAbove int64  `yaml:"activate_above"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ReportConfig configures where the run report is sent after a successful run.
type ReportConfig struct {
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Org     string `yaml:"org"`
	Bucket  string `yaml:"bucket"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults), skipped when path is empty
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: STAFFDB_SECTION_KEY
// For example: STAFFDB_DATABASE_DRIVER, STAFFDB_SAMPLE_SEED
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the configuration of the canonical run:
// five departments, ten persons, age "30", person 6.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      DriverMattn,
			Name:        "staffdb",
			BusyTimeout: 5,
		},
		Sample: SampleConfig{
			Departments: 5,
			Persons:     10,
		},
		Queries: QueriesConfig{
			Age:           "30",
			PersonID:      6,
			ActivateAbove: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Report: ReportConfig{
			MQTT: MQTTConfig{
				Broker: MQTTBrokerConfig{
					Host:     "localhost",
					Port:     1883,
					ClientID: "staffdb",
				},
				QoS: 1,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STAFFDB_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("STAFFDB_DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}

	if v := os.Getenv("STAFFDB_SAMPLE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("STAFFDB_SAMPLE_SEED: %w", err)
		}
		cfg.Sample.Seed = seed
	}

	if v := os.Getenv("STAFFDB_QUERY_AGE"); v != "" {
		cfg.Queries.Age = v
	}

	// MQTT
	if v := os.Getenv("STAFFDB_MQTT_HOST"); v != "" {
		cfg.Report.MQTT.Broker.Host = v
	}
	if v := os.Getenv("STAFFDB_MQTT_USERNAME"); v != "" {
		cfg.Report.MQTT.Auth.Username = v
	}
	if v := os.Getenv("STAFFDB_MQTT_PASSWORD"); v != "" {
		cfg.Report.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("STAFFDB_INFLUXDB_TOKEN"); v != "" {
		cfg.Report.InfluxDB.Token = v
	}

	return nil
}

// Validate checks the configuration for errors.
//
// The query age is deliberately not validated here: a non-numeric age is
// reported by the query that parses it.
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case DriverMattn, DriverModernc:
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be %q or %q", DriverMattn, DriverModernc))
	}
	if c.Database.Name == "" {
		errs = append(errs, "database.name is required")
	}
	if c.Database.BusyTimeout < 0 {
		errs = append(errs, "database.busy_timeout must not be negative")
	}

	if c.Sample.Departments < 1 || c.Sample.Departments > MaxDepartments {
		errs = append(errs, fmt.Sprintf("sample.departments must be between 1 and %d", MaxDepartments))
	}
	if c.Sample.Persons < 0 || c.Sample.Persons > MaxPersons {
		errs = append(errs, fmt.Sprintf("sample.persons must be between 0 and %d", MaxPersons))
	}

	if c.Report.MQTT.Enabled {
		if c.Report.MQTT.Broker.Host == "" {
			errs = append(errs, "report.mqtt.broker.host is required")
		}
		if c.Report.MQTT.Broker.Port < 1 || c.Report.MQTT.Broker.Port > 65535 {
			errs = append(errs, "report.mqtt.broker.port must be between 1 and 65535")
		}
		if c.Report.MQTT.QoS < 0 || c.Report.MQTT.QoS > 2 {
			errs = append(errs, "report.mqtt.qos must be 0, 1, or 2")
		}
	}

	if c.Report.InfluxDB.Enabled {
		if c.Report.InfluxDB.URL == "" {
			errs = append(errs, "report.influxdb.url is required")
		}
		if c.Report.InfluxDB.Bucket == "" {
			errs = append(errs, "report.influxdb.bucket is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
