package store

import "errors"

// Sentinel errors returned by ledger stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a lookup, update or delete targets
	// an id that does not exist.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordAlreadyExists is returned when an insert collides with an
	// existing id, typically because a concurrent request created it first.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrReferencedRecordMissing is returned when a write references a row
	// that does not exist (e.g. a transaction whose account is unknown).
	ErrReferencedRecordMissing = errors.New("referenced record does not exist")

	// ErrUnsupportedDSN is returned by [NewStorages] when the DSN scheme
	// selects no known backend.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")

	// ErrNilDatabase is returned when a repository is constructed without
	// a database connection.
	ErrNilDatabase = errors.New("database connection is nil")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
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
	// result row into a record fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")

	// ErrEncodingPayload is returned when a record cannot be converted to
	// or from its stored JSON representation.
	ErrEncodingPayload = errors.New("failed to encode record payload")
)
