package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallis/purchase-api/internal/api/middleware"
	"github.com/jmallis/purchase-api/internal/domain"
	"github.com/jmallis/purchase-api/internal/registry"
	"github.com/jmallis/purchase-api/internal/service"
)

// cannedBuyService returns a fixed outcome and records its construction
// arguments for assertions.
type cannedBuyService struct {
	result any
	err    error
}

func (s *cannedBuyService) Name() string { return service.BuyProductServiceName }

func (s *cannedBuyService) Execute(ctx context.Context) (any, error) {
	return s.result, s.err
}

// handlerFixture wires a router whose buy-product factory returns the given
// canned outcome and captures the args the handler passed in.
type handlerFixture struct {
	router   http.Handler
	lastArgs registry.Args
}

func newHandlerFixture(t *testing.T, canned *cannedBuyService) *handlerFixture {
	t.Helper()

	f := &handlerFixture{}
	reg := registry.New(slog.Default())
	reg.Register(service.BuyProductServiceName, func(args registry.Args) (service.Service, error) {
		f.lastArgs = args
		return canned, nil
	})
	f.router = NewRouter(reg, slog.Default())
	return f
}

func postPurchase(t *testing.T, router http.Handler, body string, customerID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if customerID != "" {
		req.Header.Set(middleware.CustomerIDHeader, customerID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePurchaseSuccess(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	customerID := uuid.New()
	canned := &cannedBuyService{result: &domain.PurchaseResult{
		ProductID: productID,
		Count:     2,
		Balance:   50,
	}}
	f := newHandlerFixture(t, canned)

	body := `{"product_id":"` + productID.String() + `","count":2}`
	rec := postPurchase(t, f.router, body, customerID.String())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PurchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, productID.String(), resp.Product)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(50), resp.Balance)

	// The handler forwards the validated request and the caller identity.
	request, ok := f.lastArgs["request"].(domain.PurchaseRequest)
	require.True(t, ok)
	assert.Equal(t, productID, request.ProductID)
	assert.Equal(t, 2, request.Count)
	assert.Equal(t, customerID, f.lastArgs["customer_id"])
}

func TestCreatePurchaseMissingCustomerHeader(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	canned := &cannedBuyService{
		err: service.NewError(service.ErrCustomerNotFound, service.BuyProductServiceName, nil),
	}
	f := newHandlerFixture(t, canned)

	body := `{"product_id":"` + productID.String() + `","count":1}`
	rec := postPurchase(t, f.router, body, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, uuid.Nil, f.lastArgs["customer_id"],
		"absent header resolves to the nil customer identity")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "please make sure that you created a customer", resp["error"])
}

func TestCreatePurchaseBusinessFailures(t *testing.T) {
	t.Parallel()

	productID := uuid.New()

	tests := []struct {
		name       string
		err        *service.Error
		wantStatus int
		wantError  string
	}{
		{
			name:       "out of stock",
			err:        service.NewError(service.ErrOutOfStock, service.BuyProductServiceName, nil),
			wantStatus: http.StatusConflict,
			wantError:  "not enough product in stock",
		},
		{
			name:       "product not available",
			err:        service.NewError(service.ErrProductNotAvailable, service.BuyProductServiceName, nil),
			wantStatus: http.StatusConflict,
			wantError:  "product is not available for purchase",
		},
		{
			name:       "insufficient balance",
			err:        service.NewError(service.ErrInsufficientBalance, service.BuyProductServiceName, nil),
			wantStatus: http.StatusPaymentRequired,
			wantError:  "not enough balance",
		},
		{
			name:       "product not found",
			err:        service.NewError(service.ErrProductNotFound, service.BuyProductServiceName, nil),
			wantStatus: http.StatusNotFound,
			wantError:  "product not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newHandlerFixture(t, &cannedBuyService{err: tc.err})
			body := `{"product_id":"` + productID.String() + `","count":1}`
			rec := postPurchase(t, f.router, body, uuid.New().String())

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantError, resp["error"])
		})
	}
}

func TestCreatePurchaseInvalidRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"product_id": `},
		{"missing product id", `{"count":1}`},
		{"non-uuid product id", `{"product_id":"not-a-uuid","count":1}`},
		{"zero count", `{"product_id":"` + uuid.New().String() + `","count":0}`},
		{"negative count", `{"product_id":"` + uuid.New().String() + `","count":-3}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newHandlerFixture(t, &cannedBuyService{})
			rec := postPurchase(t, f.router, tc.body, uuid.New().String())

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, f.lastArgs, "invalid requests never reach the registry")
		})
	}
}

func TestCreatePurchaseUnknownServiceIsServerError(t *testing.T) {
	t.Parallel()

	// Router wired against an empty registry: resolution fails.
	router := NewRouter(registry.New(slog.Default()), slog.Default())
	body := `{"product_id":"` + uuid.New().String() + `","count":1}`
	rec := postPurchase(t, router, body, uuid.New().String())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreatePurchaseUnexpectedResultType(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture(t, &cannedBuyService{result: "not a purchase result"})
	body := `{"product_id":"` + uuid.New().String() + `","count":1}`
	rec := postPurchase(t, f.router, body, uuid.New().String())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthzEndpoint(t *testing.T) {
	t.Parallel()

	router := NewRouter(registry.New(slog.Default()), slog.Default())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
