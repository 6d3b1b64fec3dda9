package store

import "errors"

// Sentinel errors returned by journal methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAttemptNotRecorded is returned when an INSERT of a journal record
	// completes without error but the number of affected rows is zero,
	// indicating that nothing was actually persisted.
	ErrAttemptNotRecorded = errors.New("attempt was not recorded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// journal methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan journal rows")
)
