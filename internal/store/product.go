package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/domain"
)

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product to the store.
	// Returns validation errors from the domain Product if data is invalid.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// GetByIDForUpdate retrieves a product by ID while holding a row-level
	// lock for the remainder of the surrounding transaction. It must only be
	// called on a store bound to a transaction via WithTx.
	// Returns ErrProductNotFound if the product does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// UpdateCount durably sets the product's stock count.
	// Returns ErrProductNotFound if the product does not exist.
	// Returns ErrInvalidEntity if the new count violates storage constraints.
	UpdateCount(ctx context.Context, id uuid.UUID, count int) error

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProductStore
}
