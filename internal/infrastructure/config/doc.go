// Package config handles loading and validating staffdb configuration.
//
// This package manages:
//   - Loading configuration from an optional YAML file
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The defaults describe the canonical run (five departments, ten persons,
// names aged "30", department of person 6), so the program needs no file
// at all. Report sinks (MQTT, InfluxDB) are disabled unless configured.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Name)
package config
