package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/api/shared"
)

// CustomerIDHeader is the request header carrying the resolved customer
// identity. Authentication itself is out of scope for this service; an
// upstream gateway is expected to have verified the caller and supplied
// this header.
const CustomerIDHeader = "X-Customer-ID"

// CustomerContext extracts the customer ID from the request header and
// stores it in the request context. A missing or malformed header leaves
// the context untouched; the purchase operation then fails with its
// customer-not-found error, keeping the "unauthenticated caller" behavior
// in one place.
func CustomerContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(CustomerIDHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		customerID, err := uuid.Parse(header)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), shared.CustomerIDContextKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
