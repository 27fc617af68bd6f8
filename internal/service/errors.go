package service

import (
	"errors"
	"fmt"
	"sort"
)

// Taxonomy sentinels. Every expected business-rule violation raised by a
// service is one of these kinds; callers match them with errors.Is and the
// logging decorator recognizes them via errors.As on *Error. The sentinel
// text doubles as the default user-facing message for its kind.
var (
	// ErrProductNotFound indicates the requested product identity does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductNotAvailable indicates the product exists but is flagged
	// unavailable for purchase.
	ErrProductNotAvailable = errors.New("product is not available for purchase")

	// ErrOutOfStock indicates the requested quantity exceeds current stock.
	ErrOutOfStock = errors.New("not enough product in stock")

	// ErrInsufficientBalance indicates the customer's balance does not cover
	// the total price for the requested quantity.
	ErrInsufficientBalance = errors.New("not enough balance")

	// ErrCustomerNotFound indicates no valid customer context was supplied,
	// or the customer no longer exists.
	ErrCustomerNotFound = errors.New("please make sure that you created a customer")
)

// Context carries arbitrary structured diagnostic data attached to a
// taxonomy error at the failure point (ids, amounts, entity snapshots).
type Context map[string]any

// Error is a business-rule violation raised by a service. It is
// distinguished by Kind (one of the taxonomy sentinels), never by parsing
// the message, and is immutable after creation: the logging decorator reads
// it and re-raises the identical value.
type Error struct {
	// Kind is the taxonomy sentinel identifying the variant.
	Kind error

	// Service names the originating service for log correlation.
	Service string

	// Message is the human-readable description. Empty means "use the
	// kind's default text".
	Message string

	// Context holds structured diagnostic data for the logging layer.
	Context Context
}

// NewError creates a taxonomy error of the given kind with the kind's
// default message.
func NewError(kind error, serviceName string, context Context) *Error {
	return &Error{
		Kind:    kind,
		Service: serviceName,
		Context: context,
	}
}

// NewErrorWithMessage creates a taxonomy error of the given kind with a
// caller-supplied message overriding the kind's default.
func NewErrorWithMessage(kind error, serviceName, message string, context Context) *Error {
	return &Error{
		Kind:    kind,
		Service: serviceName,
		Message: message,
		Context: context,
	}
}

// ResolvedMessage returns the error's message, falling back to the kind's
// default text when none was supplied.
func (e *Error) ResolvedMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "service error"
}

// KindName returns the stable identifier of the error's variant, suitable
// for structured log records and metrics labels.
func (e *Error) KindName() string {
	switch e.Kind {
	case ErrProductNotFound:
		return "product_not_found"
	case ErrProductNotAvailable:
		return "product_not_available"
	case ErrOutOfStock:
		return "out_of_stock"
	case ErrInsufficientBalance:
		return "insufficient_balance"
	case ErrCustomerNotFound:
		return "customer_not_found"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("%s: %s", e.Service, e.ResolvedMessage())
	}
	return e.ResolvedMessage()
}

// Unwrap returns the taxonomy sentinel so errors.Is(err, ErrOutOfStock)
// and friends work across the service boundary.
func (e *Error) Unwrap() error {
	return e.Kind
}

// AsError extracts a taxonomy *Error from err, unwrapping as needed.
// The second return value reports whether err belongs to the taxonomy.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// sortedContextKeys returns the context keys in deterministic order so log
// records are stable across runs.
func sortedContextKeys(ctx Context) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
