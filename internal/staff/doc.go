// Package staff holds the person and department tables of a run: the row
// types, a randomized sample generator, and a SQLite repository with the
// insert, update and query operations.
//
// person.department refers to department.id by convention only. The
// generator draws it from [1, n) for n departments, so department n is
// never referenced, and the join-based queries silently drop persons whose
// department does not exist. Mapping results are keyed by name, not id:
// persons sharing a name overwrite each other in PersonDepartments.
package staff
