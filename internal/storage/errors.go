package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes the callers care about.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// IsUniqueViolation reports whether err is a unique constraint violation,
// e.g. a duplicate (name, user) category.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

// IsConflict reports whether err is a transient concurrency failure the
// caller may retry: a serialization failure or a deadlock abort.
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == codeSerializationFailure || string(pqErr.Code) == codeDeadlockDetected
}
