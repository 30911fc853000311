package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to create a user
	// fails because an account with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match exactly one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrLastAdminProtected is returned when a delete would remove the last
	// remaining admin account. The check runs inside the delete transaction
	// so two concurrent deletes cannot both slip past it.
	ErrLastAdminProtected = errors.New("cannot delete the last remaining admin")

	// ErrInvalidRoleStored is returned when a role value read from the
	// database does not belong to the closed role set. This indicates manual
	// tampering or a failed migration, never normal operation.
	ErrInvalidRoleStored = errors.New("invalid role value stored in database")

	// ErrUnsupportedDriver is returned when the configured database driver is
	// not one of the supported backends.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read-only query against
	// the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
