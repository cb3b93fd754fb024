// staffdb creates a throwaway in-memory SQLite database, fills a person and
// a department table with random sample rows, and prints the results of a
// fixed sequence of update and query statements.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/rybalchenkov4/staffdb/schema"

	"github.com/rybalchenkov4/staffdb/internal/infrastructure/config"
	"github.com/rybalchenkov4/staffdb/internal/infrastructure/database"
	"github.com/rybalchenkov4/staffdb/internal/infrastructure/influxdb"
	"github.com/rybalchenkov4/staffdb/internal/infrastructure/logging"
	"github.com/rybalchenkov4/staffdb/internal/infrastructure/mqtt"
	"github.com/rybalchenkov4/staffdb/internal/report"
	"github.com/rybalchenkov4/staffdb/internal/runner"
	"github.com/rybalchenkov4/staffdb/internal/staff"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path, used only when the file exists.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute loads configuration and performs one run.
//
// It returns the process exit status: 1 when the configuration cannot be
// loaded, 0 otherwise. A failed run is reported on stderr but still exits 0.
func execute(ctx context.Context, stdout, stderr io.Writer) int {
	log := logging.Default()
	log.Info("starting staffdb",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if configPath == "" {
		log.Info("no configuration file, using defaults")
	} else {
		log.Info("configuration loaded", "path", configPath)
	}

	log = logging.New(cfg.Logging, version)

	if err := run(ctx, cfg, stdout, log); err != nil {
		log.Error("run failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 0
}

// run opens the database, connects the configured report sinks and executes
// the run. Every resource it opens is closed before it returns.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, log *logging.Logger) error {
	db, err := database.Open(ctx, database.Config{
		Driver:      cfg.Database.Driver,
		Name:        cfg.Database.Name,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	db.SetLogger(log)
	log.Info("database connected", "name", db.Name(), "driver", db.Driver())

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("initialising schema: %w", err)
	}

	gen := staff.NewGenerator(cfg.Sample.Seed)
	r := runner.New(staff.NewSQLiteRepository(db.DB), gen, runner.Options{
		Departments:   cfg.Sample.Departments,
		Persons:       cfg.Sample.Persons,
		ActivateAbove: cfg.Queries.ActivateAbove,
		Age:           cfg.Queries.Age,
		PersonID:      cfg.Queries.PersonID,
		Driver:        cfg.Database.Driver,
	}, stdout, log)

	var mqttClient *mqtt.Client
	if cfg.Report.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.Report.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		r.AddSink(report.NewMQTTSink(mqttClient))
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.Report.MQTT.Broker.Host, cfg.Report.MQTT.Broker.Port),
			"client_id", cfg.Report.MQTT.Broker.ClientID,
		)
	}

	var influxClient *influxdb.Client
	if cfg.Report.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.Report.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		r.AddSink(report.NewInfluxSink(influxClient))
		log.Info("InfluxDB connected",
			"url", cfg.Report.InfluxDB.URL,
			"org", cfg.Report.InfluxDB.Org,
			"bucket", cfg.Report.InfluxDB.Bucket,
		)
	}

	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if _, err := r.Run(ctx); err != nil {
		return err
	}

	return nil
}

// getConfigPath returns the configuration file path.
// Uses STAFFDB_CONFIG if set, otherwise the default path when that file
// exists, otherwise "" (built-in defaults).
func getConfigPath() string {
	if path := os.Getenv("STAFFDB_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigPath
}

// healthCheck verifies every opened connection. Clients that were not
// configured are nil and skipped.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
