package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatchesKindWithErrorsIs(t *testing.T) {
	t.Parallel()

	err := NewError(ErrOutOfStock, BuyProductServiceName, Context{
		"available": 5,
		"requested": 10,
	})

	assert.True(t, errors.Is(err, ErrOutOfStock))
	assert.False(t, errors.Is(err, ErrInsufficientBalance))
	assert.False(t, errors.Is(err, ErrProductNotFound))
}

func TestErrorMatchesKindAcrossWrapping(t *testing.T) {
	t.Parallel()

	err := NewError(ErrInsufficientBalance, BuyProductServiceName, nil)
	wrapped := fmt.Errorf("executing purchase: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientBalance))

	svcErr, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Same(t, err, svcErr)
}

func TestErrorKindName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind error
		want string
	}{
		{"product not found", ErrProductNotFound, "product_not_found"},
		{"product not available", ErrProductNotAvailable, "product_not_available"},
		{"out of stock", ErrOutOfStock, "out_of_stock"},
		{"insufficient balance", ErrInsufficientBalance, "insufficient_balance"},
		{"customer not found", ErrCustomerNotFound, "customer_not_found"},
		{"unrecognized kind", errors.New("boom"), "unknown"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := NewError(tc.kind, "svc", nil)
			assert.Equal(t, tc.want, err.KindName())
		})
	}
}

func TestErrorResolvedMessage(t *testing.T) {
	t.Parallel()

	t.Run("falls back to kind default", func(t *testing.T) {
		t.Parallel()

		err := NewError(ErrInsufficientBalance, "svc", nil)
		assert.Equal(t, "not enough balance", err.ResolvedMessage())
	})

	t.Run("explicit message wins", func(t *testing.T) {
		t.Parallel()

		err := NewErrorWithMessage(ErrInsufficientBalance, "svc",
			"balance too low for this order", nil)
		assert.Equal(t, "balance too low for this order", err.ResolvedMessage())
	})
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	withService := NewError(ErrProductNotFound, BuyProductServiceName, nil)
	assert.Equal(t, "buy_product: product not found", withService.Error())

	withoutService := NewError(ErrProductNotFound, "", nil)
	assert.Equal(t, "product not found", withoutService.Error())
}

func TestAsErrorRejectsNonTaxonomyErrors(t *testing.T) {
	t.Parallel()

	_, ok := AsError(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = AsError(nil)
	assert.False(t, ok)
}
