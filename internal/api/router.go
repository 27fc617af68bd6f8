package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmallis/purchase-api/internal/api/middleware"
	"github.com/jmallis/purchase-api/internal/registry"
)

// NewRouter builds the HTTP router for the purchase API.
func NewRouter(reg *registry.Registry, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.CustomerContext)

	purchaseHandler := NewPurchaseHandler(reg, log)

	r.Post("/purchases", purchaseHandler.CreatePurchase)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
