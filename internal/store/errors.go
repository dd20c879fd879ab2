package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an account with the same email
	// is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrResetTokenInvalid is returned when a password reset token is
	// unknown, expired or already used.
	ErrResetTokenInvalid = errors.New("password reset token is invalid")

	// ErrReportNotFound is returned when no report descriptor has the id.
	ErrReportNotFound = errors.New("report was not found")

	// ErrResidentNotSaved is returned when an insert reports zero affected
	// rows.
	ErrResidentNotSaved = errors.New("resident was not saved")

	// ErrTemporarilyUnavailable wraps driver errors classified as
	// [Retryable].
	ErrTemporarilyUnavailable = errors.New("storage temporarily unavailable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction
	// fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDocument is returned when a document cannot be converted
	// to or from its stored JSON text.
	ErrEncodingDocument = errors.New("failed to encode document")
)

func isUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation || isSQLiteUniqueViolation(err)
}
