package influxdb

import (
	"context"
	"fmt"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePoint writes one point and waits for the server to accept it.
//
// Tags are indexed and should stay low cardinality; fields carry the data.
//
// Example:
//
//	err := client.WritePoint(ctx, "staffdb_run",
//	    map[string]string{"run_id": id, "driver": "sqlite3"},
//	    map[string]any{"persons_inserted": int64(10)},
//	    time.Now())
func (c *Client) WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]any, ts time.Time) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	point := write.NewPoint(measurement, tags, fields, ts)
	if err := c.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, measurement, err)
	}

	return nil
}
