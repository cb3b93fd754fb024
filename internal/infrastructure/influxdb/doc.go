// Package influxdb writes staffdb run metrics to InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Each run writes a
// single point, so the blocking write API is used: a rejected write is
// returned to the caller instead of being reported on a background
// channel after the process has moved on.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.Report.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.WritePoint(ctx, "staffdb_run", tags, fields, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
package influxdb
