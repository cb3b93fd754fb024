package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Repository defines the person/department operations of a run.
type Repository interface {
	InsertDepartments(ctx context.Context, departments []Department) (int64, error)
	InsertPersons(ctx context.Context, persons []Person) (int64, error)
	ActivatePersonsAbove(ctx context.Context, id int64) (int64, error)

	ListActivePersons(ctx context.Context) ([]Person, error)
	NamesByAge(ctx context.Context, age string) ([]string, error)
	DepartmentNameForPerson(ctx context.Context, personID int64) (string, error)
	PersonDepartments(ctx context.Context) (map[string]string, error)
	DepartmentPersons(ctx context.Context) (map[string][]string, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed staff repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InsertDepartments inserts all departments with one multi-row statement
// and returns the number of rows affected.
func (r *SQLiteRepository) InsertDepartments(ctx context.Context, departments []Department) (int64, error) {
	if len(departments) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(departments)*2)
	for _, d := range departments {
		args = append(args, d.ID, d.Name)
	}

	query := "INSERT INTO department (id, name) VALUES " + placeholders(len(departments), 2)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting departments: %w", err)
	}
	return rowsAffected(result, "inserting departments")
}

// InsertPersons inserts all persons with one multi-row statement and
// returns the number of rows affected.
func (r *SQLiteRepository) InsertPersons(ctx context.Context, persons []Person) (int64, error) {
	if len(persons) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(persons)*5)
	for _, p := range persons {
		args = append(args, p.ID, p.Name, p.Age, p.DepartmentID, p.Active)
	}

	query := "INSERT INTO person (id, name, age, department, active) VALUES " + placeholders(len(persons), 5)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting persons: %w", err)
	}
	return rowsAffected(result, "inserting persons")
}

// placeholders returns "(?, ?), (?, ?)" for rows tuples of width columns.
func placeholders(rows, columns int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", columns), ", ") + ")"

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}
	return b.String()
}

// ActivatePersonsAbove sets active = true for every person with id > id.
func (r *SQLiteRepository) ActivatePersonsAbove(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE person SET active = true WHERE id > ?", id)
	if err != nil {
		return 0, fmt.Errorf("activating persons above %d: %w", id, err)
	}
	return rowsAffected(result, fmt.Sprintf("activating persons above %d", id))
}

// rowsAffected returns the row count of result. The count is a reported
// value, so a driver that cannot provide it fails the operation.
func rowsAffected(result sql.Result, op string) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: reading rows affected: %w", op, err)
	}
	return n, nil
}

// ListActivePersons returns every person with active = true.
func (r *SQLiteRepository) ListActivePersons(ctx context.Context) ([]Person, error) {
	const query = `SELECT id, name, age, department
		FROM person
		WHERE active = true`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying active persons: %w", err)
	}
	defer rows.Close()

	var persons []Person
	for rows.Next() {
		p, err := scanPersonRow(rows)
		if err != nil {
			return nil, err
		}
		p.Active = true
		persons = append(persons, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person rows: %w", err)
	}
	return persons, nil
}

// scanPersonRow scans id, name, age, department from a Rows cursor.
func scanPersonRow(rows *sql.Rows) (*Person, error) {
	var p Person
	var name sql.NullString
	var age, department sql.NullInt64

	if err := rows.Scan(&p.ID, &name, &age, &department); err != nil {
		return nil, fmt.Errorf("scanning person row: %w", err)
	}
	p.Name = name.String
	p.Age = int(age.Int64)
	p.DepartmentID = department.Int64
	return &p, nil
}

// NamesByAge returns the names of persons whose age equals age.
//
// age is parsed as a decimal integer; a malformed value returns an error
// wrapping ErrInvalidAge. Names come back in result-set order, duplicates kept.
func (r *SQLiteRepository) NamesByAge(ctx context.Context, age string) ([]string, error) {
	n, err := strconv.Atoi(age)
	if err != nil {
		return nil, fmt.Errorf("querying names by age %q: %w: %w", age, ErrInvalidAge, err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT name FROM person WHERE age = ?", n)
	if err != nil {
		return nil, fmt.Errorf("querying names by age %d: %w", n, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name row: %w", err)
		}
		names = append(names, name.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating name rows: %w", err)
	}
	return names, nil
}

// DepartmentNameForPerson returns "Person(id <id>) from <department>".
// Returns ErrDepartmentNotFound if the join yields no row.
func (r *SQLiteRepository) DepartmentNameForPerson(ctx context.Context, personID int64) (string, error) {
	const query = `SELECT d.name
		FROM department d JOIN person p ON d.id = p.department
		WHERE p.id = ?`

	var name string
	err := r.db.QueryRowContext(ctx, query, personID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("person %d: %w", personID, ErrDepartmentNotFound)
		}
		return "", fmt.Errorf("querying department of person %d: %w", personID, err)
	}
	return fmt.Sprintf("Person(id %d) from %s", personID, name), nil
}

// PersonDepartments maps person name to department name over the inner join.
//
// Persons without a matching department are absent. Persons sharing a name
// collapse to one key; the row read last wins.
func (r *SQLiteRepository) PersonDepartments(ctx context.Context) (map[string]string, error) {
	const query = `SELECT p.name AS person_name, d.name AS department_name
		FROM person p JOIN department d ON p.department = d.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying person departments: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var person sql.NullString
		var department string
		if err := rows.Scan(&person, &department); err != nil {
			return nil, fmt.Errorf("scanning person department row: %w", err)
		}
		result[person.String] = department
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person department rows: %w", err)
	}
	return result, nil
}

// DepartmentPersons maps department name to the names of its persons,
// appended in result order. Departments without persons are absent.
func (r *SQLiteRepository) DepartmentPersons(ctx context.Context) (map[string][]string, error) {
	const query = `SELECT d.name AS department_name, p.name AS person_name
		FROM department d JOIN person p ON d.id = p.department`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying department persons: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var department string
		var person sql.NullString
		if err := rows.Scan(&department, &person); err != nil {
			return nil, fmt.Errorf("scanning department person row: %w", err)
		}
		result[department] = append(result[department], person.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating department person rows: %w", err)
	}
	return result, nil
}
