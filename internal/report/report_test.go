package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rybalchenkov4/staffdb/internal/staff"
)

type publishCall struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

type fakePublisher struct {
	calls []publishCall
	qos   byte
	err   error
}

func (f *fakePublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	f.calls = append(f.calls, publishCall{topic, payload, qos, retained})
	return f.err
}

func (f *fakePublisher) QoS() byte { return f.qos }

type pointCall struct {
	measurement string
	tags        map[string]string
	fields      map[string]any
	ts          time.Time
}

type fakeWriter struct {
	calls []pointCall
	err   error
}

func (f *fakeWriter) WritePoint(_ context.Context, m string, tags map[string]string, fields map[string]any, ts time.Time) error {
	f.calls = append(f.calls, pointCall{m, tags, fields, ts})
	return f.err
}

type failingSink struct{ err error }

func (failingSink) Name() string { return "failing" }
func (s failingSink) Send(context.Context, *Run) error { return s.err }

func sampleRun() *Run {
	run := NewRun("sqlite3", 42)
	run.DepartmentsInserted = 5
	run.PersonsInserted = 10
	run.PersonsUpdated = 5
	run.ActivePersons = []staff.Person{{ID: 6, Name: "Person #6", Age: 30, DepartmentID: 2, Active: true}}
	run.Age = "30"
	run.NamesByAge = []string{"Person #6"}
	run.PersonID = 6
	run.PersonDepartments = map[string]string{"Person #6": "Department #17"}
	run.DepartmentPersons = map[string][]string{"Department #17": {"Person #6"}}
	run.Finish()
	return run
}

func TestNewRun(t *testing.T) {
	run := NewRun("sqlite", 7)

	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", run.ID, err)
	}
	if run.Driver != "sqlite" || run.Seed != 7 {
		t.Errorf("Driver/Seed = %q/%d, want sqlite/7", run.Driver, run.Seed)
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}
	if run.Duration() != 0 {
		t.Errorf("Duration() before Finish = %v, want 0", run.Duration())
	}

	other := NewRun("sqlite", 7)
	if other.ID == run.ID {
		t.Error("NewRun returned the same ID twice")
	}
}

func TestMQTTSink_Send(t *testing.T) {
	pub := &fakePublisher{qos: 1}
	run := sampleRun()

	if err := NewMQTTSink(pub).Send(context.Background(), run); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(pub.calls) != 1 {
		t.Fatalf("Publish called %d times, want 1", len(pub.calls))
	}
	call := pub.calls[0]
	if want := "staffdb/report/" + run.ID; call.topic != want {
		t.Errorf("topic = %q, want %q", call.topic, want)
	}
	if call.qos != 1 || call.retained {
		t.Errorf("qos/retained = %d/%v, want 1/false", call.qos, call.retained)
	}

	var decoded Run
	if err := json.Unmarshal(call.payload, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.ID != run.ID || decoded.PersonsInserted != 10 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.PersonDepartment != nil {
		t.Errorf("PersonDepartment = %q, want null", *decoded.PersonDepartment)
	}
}

func TestMQTTSink_NullDepartmentEncoding(t *testing.T) {
	pub := &fakePublisher{}
	run := sampleRun()

	if err := NewMQTTSink(pub).Send(context.Background(), run); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(pub.calls[0].payload, &raw); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got := string(raw["person_department"]); got != "null" {
		t.Errorf("person_department = %s, want null", got)
	}
}

func TestMQTTSink_PublishError(t *testing.T) {
	wantErr := errors.New("broker gone")
	pub := &fakePublisher{err: wantErr}

	err := NewMQTTSink(pub).Send(context.Background(), sampleRun())
	if !errors.Is(err, wantErr) {
		t.Errorf("Send() error = %v, want %v", err, wantErr)
	}
}

func TestMQTTSink_CancelledContext(t *testing.T) {
	pub := &fakePublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewMQTTSink(pub).Send(ctx, sampleRun()); !errors.Is(err, context.Canceled) {
		t.Errorf("Send() error = %v, want context.Canceled", err)
	}
	if len(pub.calls) != 0 {
		t.Error("Publish should not be called with a cancelled context")
	}
}

func TestInfluxSink_Send(t *testing.T) {
	w := &fakeWriter{}
	run := sampleRun()

	if err := NewInfluxSink(w).Send(context.Background(), run); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(w.calls) != 1 {
		t.Fatalf("WritePoint called %d times, want 1", len(w.calls))
	}
	call := w.calls[0]
	if call.measurement != "staffdb_run" {
		t.Errorf("measurement = %q, want staffdb_run", call.measurement)
	}
	if call.tags["run_id"] != run.ID || call.tags["driver"] != "sqlite3" {
		t.Errorf("tags = %v", call.tags)
	}
	if !call.ts.Equal(run.FinishedAt) {
		t.Errorf("ts = %v, want %v", call.ts, run.FinishedAt)
	}

	wantFields := map[string]int64{
		"departments_inserted": 5,
		"persons_inserted":     10,
		"persons_updated":      5,
		"persons_active":       1,
		"names_by_age":         1,
		"person_departments":   1,
		"department_persons":   1,
	}
	for k, want := range wantFields {
		got, ok := call.fields[k].(int64)
		if !ok || got != want {
			t.Errorf("field %s = %v, want %d", k, call.fields[k], want)
		}
	}
}

func TestDispatch(t *testing.T) {
	pub := &fakePublisher{}
	w := &fakeWriter{}

	if err := Dispatch(context.Background(), sampleRun(), NewMQTTSink(pub), NewInfluxSink(w)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(pub.calls) != 1 || len(w.calls) != 1 {
		t.Errorf("calls = %d/%d, want 1/1", len(pub.calls), len(w.calls))
	}
}

func TestDispatch_StopsAtFirstFailure(t *testing.T) {
	wantErr := errors.New("boom")
	w := &fakeWriter{}

	err := Dispatch(context.Background(), sampleRun(), failingSink{err: wantErr}, NewInfluxSink(w))
	if !errors.Is(err, wantErr) {
		t.Fatalf("Dispatch() error = %v, want %v", err, wantErr)
	}
	if len(w.calls) != 0 {
		t.Error("sinks after a failure should not be called")
	}
}

func TestDispatch_NoSinks(t *testing.T) {
	if err := Dispatch(context.Background(), sampleRun()); err != nil {
		t.Errorf("Dispatch() with no sinks error = %v", err)
	}
}
