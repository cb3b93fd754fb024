package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rybalchenkov4/staffdb/internal/report"
	"github.com/rybalchenkov4/staffdb/internal/staff"
)

// Logger is the logging surface the runner needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options are the arguments of the fixed query sequence.
type Options struct {
	Departments   int
	Persons       int
	ActivateAbove int64
	Age           string
	PersonID      int64
	Driver        string
}

// Runner executes the load, update and query sequence against one
// repository and prints each result to its output.
type Runner struct {
	repo   staff.Repository
	gen    *staff.Generator
	opts   Options
	out    io.Writer
	logger Logger
	sinks  []report.Sink
}

// New creates a Runner writing results to out.
func New(repo staff.Repository, gen *staff.Generator, opts Options, out io.Writer, logger Logger) *Runner {
	return &Runner{
		repo:   repo,
		gen:    gen,
		opts:   opts,
		out:    out,
		logger: logger,
	}
}

// AddSink registers a report sink notified after a successful sequence.
func (r *Runner) AddSink(s report.Sink) {
	r.sinks = append(r.sinks, s)
}

// Run executes every step in order. The first failing step aborts the rest.
// Repository errors are returned as-is; they already name the statement.
// A person without a matching department is a result, printed as null.
func (r *Runner) Run(ctx context.Context) (*report.Run, error) {
	run := report.NewRun(r.opts.Driver, r.gen.Seed())
	r.logger.Info("run started", "run_id", run.ID, "driver", run.Driver, "seed", run.Seed)

	if err := r.load(ctx, run); err != nil {
		return nil, err
	}

	updated, err := r.repo.ActivatePersonsAbove(ctx, r.opts.ActivateAbove)
	if err != nil {
		return nil, err
	}
	run.PersonsUpdated = updated
	r.printf("Updated rows: %d\n", updated)

	if err := r.query(ctx, run); err != nil {
		return nil, err
	}

	run.Finish()
	r.logger.Info("run finished", "run_id", run.ID, "duration", run.Duration())

	if err := report.Dispatch(ctx, run, r.sinks...); err != nil {
		return nil, err
	}

	return run, nil
}

// load generates and inserts the sample departments and persons.
func (r *Runner) load(ctx context.Context, run *report.Run) error {
	departments := r.gen.Departments(r.opts.Departments)
	n, err := r.repo.InsertDepartments(ctx, departments)
	if err != nil {
		return err
	}
	run.DepartmentsInserted = n
	r.printf("Inserted department rows: %d\n", n)

	persons, err := r.gen.Persons(r.opts.Persons, r.opts.Departments)
	if err != nil {
		return fmt.Errorf("generating persons: %w", err)
	}
	n, err = r.repo.InsertPersons(ctx, persons)
	if err != nil {
		return err
	}
	run.PersonsInserted = n
	r.printf("Inserted person rows: %d\n", n)

	return nil
}

// query runs the read-only steps and records their results on run.
func (r *Runner) query(ctx context.Context, run *report.Run) error {
	active, err := r.repo.ListActivePersons(ctx)
	if err != nil {
		return err
	}
	run.ActivePersons = active
	for _, p := range active {
		r.printf("Found row: [id = %d, name = %s, age = %d, department = %d]\n",
			p.ID, p.Name, p.Age, p.DepartmentID)
	}

	run.Age = r.opts.Age
	names, err := r.repo.NamesByAge(ctx, r.opts.Age)
	if err != nil {
		return err
	}
	run.NamesByAge = names
	r.printf("Person(age %s) = %v\n", r.opts.Age, names)

	run.PersonID = r.opts.PersonID
	dept, err := r.repo.DepartmentNameForPerson(ctx, r.opts.PersonID)
	switch {
	case errors.Is(err, staff.ErrDepartmentNotFound):
		r.printf("null\n")
	case err != nil:
		return err
	default:
		run.PersonDepartment = &dept
		r.printf("%s\n", dept)
	}

	byPerson, err := r.repo.PersonDepartments(ctx)
	if err != nil {
		return err
	}
	run.PersonDepartments = byPerson
	r.printf("%v\n", byPerson)

	byDepartment, err := r.repo.DepartmentPersons(ctx)
	if err != nil {
		return err
	}
	run.DepartmentPersons = byDepartment
	r.printf("%v\n", byDepartment)

	return nil
}

// printf writes a result line. Output errors are ignored, as with fmt.Printf.
func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
