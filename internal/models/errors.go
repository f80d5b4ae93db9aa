package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain. Handlers map these onto HTTP status codes.
var (
	// ErrNotFound is returned when a lookup misses (menu item, order).
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrAuthRequired is returned when a gated operation is attempted
	// without a logged-in session.
	ErrAuthRequired = errors.New("authentication required")
)

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
