package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
database:
  driver: "sqlite"
  name: "demo"
  busy_timeout: 2
sample:
  departments: 7
  persons: 12
  seed: 42
queries:
  age: "41"
  person_id: 3
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != DriverModernc {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverModernc)
	}
	if cfg.Database.Name != "demo" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "demo")
	}
	if cfg.Sample.Departments != 7 || cfg.Sample.Persons != 12 || cfg.Sample.Seed != 42 {
		t.Errorf("Sample = %+v, want {7 12 42}", cfg.Sample)
	}
	if cfg.Queries.Age != "41" || cfg.Queries.PersonID != 3 {
		t.Errorf("Queries = %+v", cfg.Queries)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Queries.ActivateAbove != 5 {
		t.Errorf("Queries.ActivateAbove = %d, want 5", cfg.Queries.ActivateAbove)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Logging.Output = %q, want %q", cfg.Logging.Output, "stderr")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Sample.Departments != 5 {
		t.Errorf("Sample.Departments = %d, want 5", cfg.Sample.Departments)
	}
	if cfg.Queries.Age != "30" {
		t.Errorf("Queries.Age = %q, want %q", cfg.Queries.Age, "30")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
sample:
  departments: 0
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for zero departments, got nil")
	}
}

func TestLoad_InvalidSeedEnv(t *testing.T) {
	t.Setenv("STAFFDB_SAMPLE_SEED", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for invalid STAFFDB_SAMPLE_SEED, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "modernc driver",
			mutate:  func(c *Config) { c.Database.Driver = DriverModernc },
			wantErr: false,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: true,
		},
		{
			name:    "missing database name",
			mutate:  func(c *Config) { c.Database.Name = "" },
			wantErr: true,
		},
		{
			name:    "zero departments",
			mutate:  func(c *Config) { c.Sample.Departments = 0 },
			wantErr: true,
		},
		{
			name:    "single department",
			mutate:  func(c *Config) { c.Sample.Departments = 1 },
			wantErr: false,
		},
		{
			name:    "departments at statement limit",
			mutate:  func(c *Config) { c.Sample.Departments = MaxDepartments },
			wantErr: false,
		},
		{
			name:    "departments over statement limit",
			mutate:  func(c *Config) { c.Sample.Departments = MaxDepartments + 1 },
			wantErr: true,
		},
		{
			name:    "persons at statement limit",
			mutate:  func(c *Config) { c.Sample.Persons = MaxPersons },
			wantErr: false,
		},
		{
			name:    "persons over statement limit",
			mutate:  func(c *Config) { c.Sample.Persons = MaxPersons + 1 },
			wantErr: true,
		},
		{
			name:    "negative persons",
			mutate:  func(c *Config) { c.Sample.Persons = -1 },
			wantErr: true,
		},
		{
			name:    "non-numeric age is left to the query",
			mutate:  func(c *Config) { c.Queries.Age = "thirty" },
			wantErr: false,
		},
		{
			name: "mqtt enabled with invalid QoS",
			mutate: func(c *Config) {
				c.Report.MQTT.Enabled = true
				c.Report.MQTT.QoS = 3
			},
			wantErr: true,
		},
		{
			name: "mqtt enabled with invalid port",
			mutate: func(c *Config) {
				c.Report.MQTT.Enabled = true
				c.Report.MQTT.Broker.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "mqtt disabled ignores broker settings",
			mutate: func(c *Config) {
				c.Report.MQTT.Broker.Host = ""
			},
			wantErr: false,
		},
		{
			name: "influxdb enabled without url",
			mutate: func(c *Config) {
				c.Report.InfluxDB.Enabled = true
				c.Report.InfluxDB.Bucket = "runs"
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled",
			mutate: func(c *Config) {
				c.Report.InfluxDB.Enabled = true
				c.Report.InfluxDB.URL = "http://localhost:8086"
				c.Report.InfluxDB.Bucket = "runs"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatementLimits(t *testing.T) {
	if MaxDepartments*departmentColumns > maxSQLVariables {
		t.Errorf("MaxDepartments = %d needs %d variables, limit %d", MaxDepartments, MaxDepartments*departmentColumns, maxSQLVariables)
	}
	if MaxPersons*personColumns > maxSQLVariables {
		t.Errorf("MaxPersons = %d needs %d variables, limit %d", MaxPersons, MaxPersons*personColumns, maxSQLVariables)
	}
	if MaxDepartments != 16383 || MaxPersons != 6553 {
		t.Errorf("limits = %d/%d, want 16383/6553", MaxDepartments, MaxPersons)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("STAFFDB_DATABASE_DRIVER", "sqlite")
	t.Setenv("STAFFDB_DATABASE_NAME", "override")
	t.Setenv("STAFFDB_SAMPLE_SEED", "1234")
	t.Setenv("STAFFDB_QUERY_AGE", "44")
	t.Setenv("STAFFDB_MQTT_HOST", "mqtt.example.com")
	t.Setenv("STAFFDB_MQTT_USERNAME", "testuser")
	t.Setenv("STAFFDB_MQTT_PASSWORD", "testpass")
	t.Setenv("STAFFDB_INFLUXDB_TOKEN", "secret-token")

	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Database.Name != "override" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "override")
	}
	if cfg.Sample.Seed != 1234 {
		t.Errorf("Sample.Seed = %d, want 1234", cfg.Sample.Seed)
	}
	if cfg.Queries.Age != "44" {
		t.Errorf("Queries.Age = %q, want %q", cfg.Queries.Age, "44")
	}
	if cfg.Report.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.Report.MQTT.Broker.Host, "mqtt.example.com")
	}
	if cfg.Report.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.Report.MQTT.Auth.Username, "testuser")
	}
	if cfg.Report.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.Report.MQTT.Auth.Password, "testpass")
	}
	if cfg.Report.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.Report.InfluxDB.Token, "secret-token")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Driver != DriverMattn {
		t.Errorf("defaultConfig Database.Driver = %q, want %q", cfg.Database.Driver, DriverMattn)
	}
	if cfg.Sample.Persons != 10 {
		t.Errorf("defaultConfig Sample.Persons = %d, want 10", cfg.Sample.Persons)
	}
	if cfg.Queries.PersonID != 6 {
		t.Errorf("defaultConfig Queries.PersonID = %d, want 6", cfg.Queries.PersonID)
	}
	if cfg.Report.MQTT.Enabled || cfg.Report.InfluxDB.Enabled {
		t.Error("defaultConfig should leave report sinks disabled")
	}
	if cfg.Report.MQTT.Broker.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 1883", cfg.Report.MQTT.Broker.Port)
	}
}
