package engine

import (
	"errors"
	"fmt"
)

// The failure taxonomy for ledger operations. Validation errors are raised
// before any mutation; ErrConflict and ErrStorage come out of the commit
// path and leave no partial state behind.
var (
	ErrMissingField        = errors.New("missing required fields")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrForbidden           = errors.New("unauthorized account access")
	ErrNotFound            = errors.New("not found")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConflict            = errors.New("conflicting operation, retry")
	ErrStorage             = errors.New("storage failure")
)

// TypeMismatch builds an ErrTypeMismatch carrying both the category's type
// and the requested type.
func TypeMismatch(categoryType, requestedType string) error {
	return fmt.Errorf("%w: category type (%s) doesn't match transaction type (%s)",
		ErrTypeMismatch, categoryType, requestedType)
}

// taxonomy lists the sentinels in the order they are matched for labeling.
var taxonomy = map[error]string{
	ErrMissingField:        "missing_field",
	ErrInvalidAmount:       "invalid_amount",
	ErrForbidden:           "forbidden",
	ErrNotFound:            "not_found",
	ErrTypeMismatch:        "type_mismatch",
	ErrInsufficientBalance: "insufficient_balance",
	ErrConflict:            "conflict",
	ErrStorage:             "storage_failure",
}

// isTaxonomy reports whether err already belongs to the failure taxonomy.
func isTaxonomy(err error) bool {
	for sentinel := range taxonomy {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ResultLabel names the outcome of an operation for metrics.
func ResultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for sentinel, label := range taxonomy {
		if errors.Is(err, sentinel) {
			return label
		}
	}
	return "internal_error"
}
