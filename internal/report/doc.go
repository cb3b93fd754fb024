// Package report builds the summary of a staffdb run and hands it to
// optional sinks (MQTT, InfluxDB) once the query sequence has finished.
package report
