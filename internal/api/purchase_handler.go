package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/api/shared"
	"github.com/jmallis/purchase-api/internal/domain"
	"github.com/jmallis/purchase-api/internal/platform/logger"
	"github.com/jmallis/purchase-api/internal/registry"
	"github.com/jmallis/purchase-api/internal/service"
)

// PurchaseRequest represents the request body for creating a purchase.
type PurchaseRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Count     int    `json:"count"      validate:"required,gt=0"`
}

// PurchaseResponse represents the response data for a completed purchase.
type PurchaseResponse struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
	Balance int64  `json:"balance"`
}

// PurchaseHandler handles purchase-related HTTP requests.
type PurchaseHandler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler. Services are resolved
// through the registry per request, so tests and deployments can substitute
// implementations without touching this handler.
func NewPurchaseHandler(reg *registry.Registry, log *slog.Logger) *PurchaseHandler {
	if reg == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for PurchaseHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PurchaseHandler{
		registry: reg,
		logger:   log.With(slog.String("component", "purchase_handler")),
	}
}

// CreatePurchase handles POST /purchases requests.
// It validates the request body, resolves the buy-product service from the
// registry with the caller's customer identity, executes it, and translates
// the outcome into an HTTP response.
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PurchaseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product ID")
		return
	}

	purchase, err := domain.NewPurchaseRequest(productID, req.Count)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	// Absent customer context resolves to uuid.Nil; the service reports it
	// as a customer-not-found failure.
	customerID, _ := r.Context().Value(shared.CustomerIDContextKey).(uuid.UUID)

	svc, err := h.registry.Resolve(service.BuyProductServiceName, registry.Args{
		"request":     purchase,
		"customer_id": customerID,
	})
	if err != nil {
		// A resolution failure is a wiring bug, not a business failure.
		log.Error("failed to resolve buy product service",
			slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
		return
	}

	result, err := svc.Execute(r.Context())
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	purchaseResult, ok := result.(*domain.PurchaseResult)
	if !ok {
		log.Error("buy product service returned unexpected result type")
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PurchaseResponse{
		Product: purchaseResult.ProductID.String(),
		Count:   purchaseResult.Count,
		Balance: purchaseResult.Balance,
	})
}
