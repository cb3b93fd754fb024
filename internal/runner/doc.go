// Package runner drives a staffdb run: it loads generated sample rows,
// applies the bulk update, runs the fixed queries and prints every result.
//
// Output is written line by line in a fixed order:
//
//	Inserted department rows: 5
//	Inserted person rows: 10
//	Updated rows: 5
//	Found row: [id = 6, name = Person #6, age = 31, department = 2]
//	...
//	Person(age 30) = [Person #3]
//	Person(id 6) from Department #27
//	map[Person #1:Department #12 ...]
//	map[Department #12:[Person #1 Person #7] ...]
//
// A person whose department reference matches no department prints null.
package runner
