package apperr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a taxonomy error to a response code and a message that
// is safe to return to untrusted callers. Unknown errors collapse to a
// generic 500.
func HTTPStatus(err error) (int, string) {
	var insufficientStock *InsufficientStockError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrNothingToUpdate):
		return http.StatusBadRequest, ErrNothingToUpdate.Error()
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound, ErrOrderNotFound.Error()
	case errors.Is(err, ErrReceiptNotFound):
		return http.StatusNotFound, ErrReceiptNotFound.Error()
	case errors.Is(err, ErrCustomerNotFound):
		return http.StatusNotFound, ErrCustomerNotFound.Error()
	case errors.As(err, &insufficientStock):
		return http.StatusConflict, insufficientStock.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
