package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jmallis/purchase-api/internal/api/shared"
)

func runCustomerContext(t *testing.T, header string) (uuid.UUID, bool) {
	t.Helper()

	var (
		got uuid.UUID
		ok  bool
	)
	handler := CustomerContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = r.Context().Value(shared.CustomerIDContextKey).(uuid.UUID)
	}))

	req := httptest.NewRequest(http.MethodPost, "/purchases", nil)
	if header != "" {
		req.Header.Set(CustomerIDHeader, header)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestCustomerContextSetsIdentity(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	got, ok := runCustomerContext(t, customerID.String())

	assert.True(t, ok)
	assert.Equal(t, customerID, got)
}

func TestCustomerContextMissingHeader(t *testing.T) {
	t.Parallel()

	_, ok := runCustomerContext(t, "")
	assert.False(t, ok, "missing header leaves the context untouched")
}

func TestCustomerContextMalformedHeader(t *testing.T) {
	t.Parallel()

	_, ok := runCustomerContext(t, "not-a-uuid")
	assert.False(t, ok, "malformed header leaves the context untouched")
}

func TestTraceMiddlewareAssignsTraceID(t *testing.T) {
	t.Parallel()

	var traceID string
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Len(t, traceID, 2*shared.TraceIDLength)
}
