package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/domain"
	"github.com/jmallis/purchase-api/internal/events"
	"github.com/jmallis/purchase-api/internal/platform/logger"
	"github.com/jmallis/purchase-api/internal/store"
)

// BuyProductServiceName is the registry name of the buy-product service.
const BuyProductServiceName = "buy_product"

// BuyProductDeps bundles the collaborators a BuyProductService needs.
// Emitter may be nil, in which case no post-commit event is published.
type BuyProductDeps struct {
	DB        *sql.DB
	Customers store.CustomerStore
	Products  store.ProductStore
	Emitter   events.Emitter
	Logger    *slog.Logger
}

// BuyProductService performs one purchase: the customer identified by
// customerID spends balance to acquire request.Count units of the requested
// product. The instance is immutable once constructed; its fields are the
// operation's fixed parameters. The operation is NOT idempotent: executing
// it twice buys twice.
type BuyProductService struct {
	request    domain.PurchaseRequest
	customerID uuid.UUID
	db         *sql.DB
	customers  store.CustomerStore
	products   store.ProductStore
	emitter    events.Emitter
	logger     *slog.Logger
}

// NewBuyProductService creates a BuyProductService for one validated
// purchase request. customerID is the resolved customer identity; uuid.Nil
// means the caller had no customer context and the operation will fail with
// ErrCustomerNotFound. Returns an error if a required dependency is nil or
// the request is invalid.
func NewBuyProductService(
	request domain.PurchaseRequest,
	customerID uuid.UUID,
	deps BuyProductDeps,
) (*BuyProductService, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if deps.DB == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if deps.Customers == nil {
		return nil, domain.NewValidationError("customers", "cannot be nil", domain.ErrValidation)
	}
	if deps.Products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &BuyProductService{
		request:    request,
		customerID: customerID,
		db:         deps.DB,
		customers:  deps.Customers,
		products:   deps.Products,
		emitter:    deps.Emitter,
		logger:     log.With(slog.String("component", "buy_product_service")),
	}, nil
}

// Name implements Service.Name.
func (s *BuyProductService) Name() string {
	return BuyProductServiceName
}

// Execute implements Service.Execute. On success the result is a
// *domain.PurchaseResult.
func (s *BuyProductService) Execute(ctx context.Context) (any, error) {
	result, err := s.buy(ctx)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// buy runs the purchase. Validation order is fixed (existence, stock,
// availability, affordability) so error context stays deterministic
// regardless of which conditions hold simultaneously. Every check runs
// inside the transaction against rows locked with FOR UPDATE, so a
// concurrent purchase cannot invalidate a check between read and commit.
func (s *BuyProductService) buy(ctx context.Context) (*domain.PurchaseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.customerID == uuid.Nil {
		return nil, NewError(ErrCustomerNotFound, s.Name(), Context{
			"product_id": s.request.ProductID.String(),
			"requested":  s.request.Count,
		})
	}

	var (
		result     *domain.PurchaseResult
		totalPrice int64
	)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		products := s.products.WithTx(tx)
		customers := s.customers.WithTx(tx)

		product, err := products.GetByIDForUpdate(ctx, s.request.ProductID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewError(ErrProductNotFound, s.Name(), Context{
					"product_id": s.request.ProductID.String(),
					"requested":  s.request.Count,
				})
			}
			return err
		}

		if product.Count < s.request.Count {
			return NewError(ErrOutOfStock, s.Name(), Context{
				"product_id": product.ID.String(),
				"available":  product.Count,
				"requested":  s.request.Count,
			})
		}

		if !product.Available {
			return NewError(ErrProductNotAvailable, s.Name(), Context{
				"product_id": product.ID.String(),
				"requested":  s.request.Count,
			})
		}

		customer, err := customers.GetByIDForUpdate(ctx, s.customerID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewError(ErrCustomerNotFound, s.Name(), Context{
					"customer_id": s.customerID.String(),
					"product_id":  product.ID.String(),
				})
			}
			return err
		}

		total := product.Price * int64(s.request.Count)

		// Equal balance is sufficient: only a strictly smaller balance fails.
		if customer.Balance < total {
			return NewError(ErrInsufficientBalance, s.Name(), Context{
				"customer_id": customer.ID.String(),
				"balance":     customer.Balance,
				"product_id":  product.ID.String(),
				"price":       product.Price,
				"requested":   s.request.Count,
				"total_price": total,
			})
		}

		if err := customers.UpdateBalance(ctx, customer.ID, customer.Balance-total); err != nil {
			return err
		}
		if err := products.UpdateCount(ctx, product.ID, product.Count-s.request.Count); err != nil {
			return err
		}

		result = &domain.PurchaseResult{
			ProductID: product.ID,
			Count:     s.request.Count,
			Balance:   customer.Balance - total,
		}
		totalPrice = total

		log.Debug("purchase committed",
			slog.String("customer_id", customer.ID.String()),
			slog.String("product_id", product.ID.String()),
			slog.Int("count", s.request.Count),
			slog.Int64("total_price", total),
			slog.Int64("balance", result.Balance))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side effects run strictly after the commit succeeded; their failure
	// must never roll back or fail the purchase.
	s.emitPurchaseCompleted(ctx, log, result, totalPrice)

	return result, nil
}

// emitPurchaseCompleted publishes the post-commit event. Failures are
// logged as warnings and otherwise ignored.
func (s *BuyProductService) emitPurchaseCompleted(
	ctx context.Context,
	log *slog.Logger,
	result *domain.PurchaseResult,
	totalPrice int64,
) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewEvent(events.TypePurchaseCompleted, events.PurchaseCompletedPayload{
		CustomerID: s.customerID.String(),
		ProductID:  result.ProductID.String(),
		Count:      result.Count,
		TotalPrice: totalPrice,
		Balance:    result.Balance,
	})
	if err != nil {
		log.Warn("failed to build purchase completed event",
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit purchase completed event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
	}
}
