package pgq

import (
	"errors"
	"fmt"
	"strings"
)

// PostgreSQL SQLSTATE codes for the integrity-constraint-violation class.
// Exported so callers can branch on ConstraintError.Code without importing
// a driver package.
const (
	SQLStateNotNullViolation    = "23502"
	SQLStateForeignKeyViolation = "23503"
	SQLStateUniqueViolation     = "23505"
	SQLStateCheckViolation      = "23514"

	// sqlStateClassConstraint is the two-character class prefix shared by
	// all integrity constraint violations.
	sqlStateClassConstraint = "23"
)

// ConstraintError reports a statement the backend rejected because it would
// violate an integrity constraint (unique, foreign-key, check, not-null).
//
// This is the one failure this package expects callers to branch on: a
// duplicate unique value or a dangling reference is a normal, anticipated
// business outcome of an insert, update or delete.
type ConstraintError struct {
	// Code is the five-character SQLSTATE reported by the backend.
	Code string

	err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("pgq: constraint violation (SQLSTATE %s): %v", e.Code, e.err)
}

func (e *ConstraintError) Unwrap() error {
	return e.err
}

// Unique reports whether the violated constraint is a unique constraint.
func (e *ConstraintError) Unique() bool { return e.Code == SQLStateUniqueViolation }

// ForeignKey reports whether the violated constraint is a foreign key.
func (e *ConstraintError) ForeignKey() bool { return e.Code == SQLStateForeignKeyViolation }

// Check reports whether the violated constraint is a check constraint.
func (e *ConstraintError) Check() bool { return e.Code == SQLStateCheckViolation }

// NotNull reports whether the violated constraint is a not-null constraint.
func (e *ConstraintError) NotNull() bool { return e.Code == SQLStateNotNullViolation }

// IsConstraintErr returns true if err is or wraps a ConstraintError.
func IsConstraintErr(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// FatalError reports a failure this package treats as unrecoverable: a lost
// or misbehaving connection, a backend error outside the constraint class,
// or a result row that does not decode into the model shape.
//
// These indicate a broken environment or a logic bug, not a condition the
// calling code can meaningfully branch on. The top-level caller is expected
// to let a FatalError propagate (and abort the unit of work) rather than
// handle it; converting it into ordinary control flow defeats the contract.
// Retry policy, if any, belongs to the connection layer, not here.
type FatalError struct {
	// Op names the operation that failed, e.g. "SELECT" or "scan".
	Op string

	err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("pgq: %s: unrecoverable: %v", e.Op, e.err)
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// IsFatalErr returns true if err is or wraps a FatalError.
func IsFatalErr(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// mapExecError classifies a backend error from a mutating statement:
// constraint-class SQLSTATEs become a recoverable ConstraintError,
// everything else is fatal.
func mapExecError(op string, err error) error {
	if code := sqlState(err); strings.HasPrefix(code, sqlStateClassConstraint) {
		return &ConstraintError{Code: code, err: err}
	}
	return &FatalError{Op: op, err: err}
}

// sqlState extracts the SQLSTATE code from a PostgreSQL error.
// Works with multiple drivers via interface detection:
//   - pgx/pgconn: SQLState() string
//   - lib/pq: Code field (via error interface)
//
// Returns empty string if the error doesn't carry a SQLSTATE.
func sqlState(err error) string {
	// Try SQLState() method (pgx/pgconn, and some pq versions)
	type sqlStateErr interface{ SQLState() string }
	var se sqlStateErr
	if errors.As(err, &se) {
		return se.SQLState()
	}

	// Try Code() method (some error wrappers)
	type codeErr interface{ Code() string }
	var ce codeErr
	if errors.As(err, &ce) {
		return ce.Code()
	}

	// Fallback: string matching for known patterns (last resort)
	errStr := err.Error()
	for _, prefix := range []string{"SQLSTATE ", "SQLSTATE: "} {
		if idx := strings.Index(errStr, prefix); idx >= 0 {
			start := idx + len(prefix)
			if start+5 <= len(errStr) {
				return errStr[start : start+5]
			}
		}
	}

	return ""
}
