package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rybalchenkov4/staffdb/internal/staff"
)

// Run summarises one execution of the query sequence.
type Run struct {
	ID         string    `json:"run_id"`
	Driver     string    `json:"driver"`
	Seed       uint64    `json:"seed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	DepartmentsInserted int64 `json:"departments_inserted"`
	PersonsInserted     int64 `json:"persons_inserted"`
	PersonsUpdated      int64 `json:"persons_updated"`

	ActivePersons []staff.Person `json:"active_persons"`

	Age        string   `json:"age"`
	NamesByAge []string `json:"names_by_age"`

	PersonID int64 `json:"person_id"`
	// PersonDepartment is nil when the person has no matching department.
	PersonDepartment *string `json:"person_department"`

	PersonDepartments map[string]string   `json:"person_departments"`
	DepartmentPersons map[string][]string `json:"department_persons"`
}

// NewRun starts a report with a fresh run id.
func NewRun(driver string, seed uint64) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Driver:    driver,
		Seed:      seed,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the completion time.
func (r *Run) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Duration returns the elapsed time of a finished run.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Sink receives finished run reports.
type Sink interface {
	Name() string
	Send(ctx context.Context, run *Run) error
}

// Dispatch sends run to every sink in order and stops at the first failure.
func Dispatch(ctx context.Context, run *Run, sinks ...Sink) error {
	for _, s := range sinks {
		if err := s.Send(ctx, run); err != nil {
			return fmt.Errorf("sending report to %s: %w", s.Name(), err)
		}
	}
	return nil
}
