package staff

import "errors"

var (
	// ErrInvalidAge is returned when an age argument is not an integer.
	ErrInvalidAge = errors.New("invalid age")

	// ErrDepartmentNotFound is returned when a person has no matching department,
	// either because the person does not exist or its department reference is orphaned.
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrNoDepartmentRange is returned when persons cannot be assigned a department
	// because the department range [1, n) is empty.
	ErrNoDepartmentRange = errors.New("department range is empty: need at least 2 departments")
)
