package staff

// Department is a row of the department table.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Person is a row of the person table.
//
// DepartmentID refers to Department.ID by convention only; no constraint
// enforces it and it may name a department that does not exist.
type Person struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	DepartmentID int64  `json:"department"`
	Active       bool   `json:"active"`
}
