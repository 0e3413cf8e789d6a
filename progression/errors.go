package progression

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error taxonomy for the progression core. Controllers translate these to HTTP
// statuses; ErrTransactionConflict is the only retryable category and callers
// must retry the whole operation from scratch rather than patch partial state.
var (
	ErrNotFound            = errors.New("not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrConflictDuplicate   = errors.New("duplicate submission")
	ErrTransactionConflict = errors.New("transaction conflict")
)

// IsRetryable reports whether the caller should re-run the whole operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionConflict)
}

// translateDBError folds driver-level failures into the core taxonomy
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isSerializationFailure(err) {
		return ErrTransactionConflict
	}
	return err
}

// isSerializationFailure matches Postgres serialization/deadlock aborts
// (SQLSTATE 40001, 40P01) raised under serializable isolation
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation matches duplicate-key errors from Postgres (23505) and
// sqlite, which the test suite runs on
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
