// Package apperr defines the business error taxonomy shared by all
// workflows. Handlers translate these into HTTP responses; everything
// else stays an opaque storage failure.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrProductNotFound  = errors.New("product not found or inactive")
	ErrOrderNotFound    = errors.New("order not found")
	ErrReceiptNotFound  = errors.New("stock-in receipt not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrNothingToUpdate  = errors.New("no valid fields to update")
)

// InsufficientStockError names the offending product so callers can show
// a useful message without another lookup.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// StorageError wraps any underlying I/O or transaction failure. Its
// detail is logged server-side and never surfaces to callers.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
