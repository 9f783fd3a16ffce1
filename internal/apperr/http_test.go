package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", fmt.Errorf("%w: items required", ErrInvalidRequest), http.StatusBadRequest},
		{"nothing to update", ErrNothingToUpdate, http.StatusBadRequest},
		{"invalid status", fmt.Errorf("%w: order_status %q", ErrInvalidStatus, "shipped"), http.StatusUnprocessableEntity},
		{"product not found", ErrProductNotFound, http.StatusNotFound},
		{"order not found", ErrOrderNotFound, http.StatusNotFound},
		{"receipt not found", ErrReceiptNotFound, http.StatusNotFound},
		{"customer not found", ErrCustomerNotFound, http.StatusNotFound},
		{"insufficient stock", &InsufficientStockError{ProductName: "Widget", Available: 1, Requested: 5}, http.StatusConflict},
		{"storage failure", Storage("order.create", errors.New("connection reset")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := HTTPStatus(tt.err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestStorageErrorNeverLeaksDetail(t *testing.T) {
	_, msg := HTTPStatus(Storage("ledger.export", errors.New("dial tcp 10.0.0.5: refused")))
	assert.Equal(t, "internal server error", msg)
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("order.create", cause)
	assert.ErrorIs(t, err, cause)
}
