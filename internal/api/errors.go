package api

import (
	"errors"
	"net/http"

	"github.com/jmallis/purchase-api/internal/registry"
	"github.com/jmallis/purchase-api/internal/service"
	"github.com/jmallis/purchase-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients. The variant-to-status mapping is a boundary concern:
// the service layer only distinguishes error kinds.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: the purchase is valid but the product's current
	// state refuses it
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrProductNotAvailable):
		return http.StatusConflict

	// The customer exists but cannot pay
	case errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusPaymentRequired

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Wiring bugs are server-side failures
	case errors.Is(err, registry.ErrUnknownService):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// Taxonomy errors carry their own user-facing message.
	if svcErr, ok := service.AsError(err); ok {
		return svcErr.ResolvedMessage()
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
