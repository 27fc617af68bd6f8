package service

import "context"

// Service is a single callable unit of business logic. Implementations are
// immutable values constructed once per call with all fixed parameters as
// named struct fields, so call sites stay self-describing and free of
// positional-argument mistakes.
//
// Execute produces one result value or fails with a taxonomy *Error for
// expected business-rule violations. Infrastructure faults propagate as
// ordinary errors outside the taxonomy. Calling Execute twice is only safe
// when the underlying operation is idempotent; the buy operation is not.
type Service interface {
	// Name identifies the service in log records and registry lookups.
	Name() string

	// Execute runs the operation.
	Execute(ctx context.Context) (any, error)
}
