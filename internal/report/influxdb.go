package report

import (
	"context"
	"time"
)

// measurement is the InfluxDB measurement written for each run.
const measurement = "staffdb_run"

// PointWriter is the subset of the InfluxDB client used by InfluxSink.
type PointWriter interface {
	WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]any, ts time.Time) error
}

// InfluxSink writes one staffdb_run point per run.
type InfluxSink struct {
	w PointWriter
}

// NewInfluxSink creates a sink writing through w.
func NewInfluxSink(w PointWriter) *InfluxSink {
	return &InfluxSink{w: w}
}

// Name implements Sink.
func (s *InfluxSink) Name() string { return "influxdb" }

// Send implements Sink.
func (s *InfluxSink) Send(ctx context.Context, run *Run) error {
	tags := map[string]string{
		"run_id": run.ID,
		"driver": run.Driver,
	}
	fields := map[string]any{
		"departments_inserted": run.DepartmentsInserted,
		"persons_inserted":     run.PersonsInserted,
		"persons_updated":      run.PersonsUpdated,
		"persons_active":       int64(len(run.ActivePersons)),
		"names_by_age":         int64(len(run.NamesByAge)),
		"person_departments":   int64(len(run.PersonDepartments)),
		"department_persons":   int64(len(run.DepartmentPersons)),
		"duration_ms":          run.Duration().Milliseconds(),
	}

	ts := run.FinishedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return s.w.WritePoint(ctx, measurement, tags, fields, ts)
}
