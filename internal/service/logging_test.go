package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallis/purchase-api/internal/platform/logger"
)

// stubService is a canned Service for decorator tests.
type stubService struct {
	name   string
	result any
	err    error
	calls  int
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Execute(ctx context.Context) (any, error) {
	s.calls++
	return s.result, s.err
}

func newDecoratorLogger(t *testing.T) (*logger.TestLogBuffer, *slog.Logger) {
	t.Helper()

	buf := &logger.TestLogBuffer{}
	return buf, slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestWithErrorLoggingPassesSuccessThrough(t *testing.T) {
	t.Parallel()

	buf, log := newDecoratorLogger(t)
	stub := &stubService{name: "stub", result: "payload"}

	result, err := WithErrorLogging(stub, log).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 1, stub.calls)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.Empty(t, entries, "successful execution must not be logged")
}

func TestWithErrorLoggingLogsTaxonomyErrorOnce(t *testing.T) {
	t.Parallel()

	buf, log := newDecoratorLogger(t)
	svcErr := NewError(ErrOutOfStock, BuyProductServiceName, Context{
		"product_id": "p-1",
		"available":  5,
		"requested":  10,
	})
	stub := &stubService{name: BuyProductServiceName, err: svcErr}

	result, err := WithErrorLogging(stub, log).Execute(context.Background())

	assert.Nil(t, result)
	assert.Same(t, svcErr, err, "error must be returned unchanged")
	assert.True(t, errors.Is(err, ErrOutOfStock))

	entries, logErr := buf.GetLogEntries()
	require.NoError(t, logErr)
	require.Len(t, entries, 1, "exactly one record per failure")

	entry := entries[0]
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "service error", entry["msg"])
	assert.Equal(t, BuyProductServiceName, entry["service"])
	assert.Equal(t, "out_of_stock", entry["error_kind"])
	assert.Equal(t, "not enough product in stock", entry["message"])
	assert.Equal(t, "p-1", entry["product_id"])
	assert.Equal(t, float64(5), entry["available"])
	assert.Equal(t, float64(10), entry["requested"])
}

func TestWithErrorLoggingPrefersOriginatingServiceName(t *testing.T) {
	t.Parallel()

	buf, log := newDecoratorLogger(t)
	svcErr := NewError(ErrCustomerNotFound, BuyProductServiceName, nil)
	stub := &stubService{name: "outer_wrapper", err: svcErr}

	_, err := WithErrorLogging(stub, log).Execute(context.Background())
	require.Error(t, err)

	entries, logErr := buf.GetLogEntries()
	require.NoError(t, logErr)
	require.Len(t, entries, 1)
	assert.Equal(t, BuyProductServiceName, entries[0]["service"])
}

func TestWithErrorLoggingFallsBackToWrappedServiceName(t *testing.T) {
	t.Parallel()

	buf, log := newDecoratorLogger(t)
	svcErr := NewError(ErrProductNotFound, "", nil)
	stub := &stubService{name: "fallback_name", err: svcErr}

	_, err := WithErrorLogging(stub, log).Execute(context.Background())
	require.Error(t, err)

	entries, logErr := buf.GetLogEntries()
	require.NoError(t, logErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "fallback_name", entries[0]["service"])
}

func TestWithErrorLoggingIgnoresNonTaxonomyErrors(t *testing.T) {
	t.Parallel()

	buf, log := newDecoratorLogger(t)
	infraErr := errors.New("connection refused")
	stub := &stubService{name: "stub", err: infraErr}

	_, err := WithErrorLogging(stub, log).Execute(context.Background())

	assert.Same(t, infraErr, err)

	entries, logErr := buf.GetLogEntries()
	require.NoError(t, logErr)
	assert.Empty(t, entries, "infrastructure errors are not this layer's concern")
}

func TestWithErrorLoggingUsesContextLogger(t *testing.T) {
	t.Parallel()

	ctxBuf, ctxLog := newDecoratorLogger(t)
	fallbackBuf, fallbackLog := newDecoratorLogger(t)

	stub := &stubService{name: "stub", err: NewError(ErrOutOfStock, "stub", nil)}
	ctx := logger.WithLogger(context.Background(), ctxLog)

	_, err := WithErrorLogging(stub, fallbackLog).Execute(ctx)
	require.Error(t, err)

	ctxEntries, logErr := ctxBuf.GetLogEntries()
	require.NoError(t, logErr)
	assert.Len(t, ctxEntries, 1)

	fallbackEntries, logErr := fallbackBuf.GetLogEntries()
	require.NoError(t, logErr)
	assert.Empty(t, fallbackEntries)
}

func TestWithErrorLoggingDelegatesName(t *testing.T) {
	t.Parallel()

	_, log := newDecoratorLogger(t)
	stub := &stubService{name: "inner"}

	assert.Equal(t, "inner", WithErrorLogging(stub, log).Name())
}
