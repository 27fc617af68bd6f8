package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/domain"
)

// CustomerStore defines the interface for customer data persistence.
type CustomerStore interface {
	// Create saves a new customer to the store.
	// Returns validation errors from the domain Customer if data is invalid.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by their unique ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByIDForUpdate retrieves a customer by ID while holding a row-level
	// lock for the remainder of the surrounding transaction. It must only be
	// called on a store bound to a transaction via WithTx.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// UpdateBalance durably sets the customer's balance.
	// Returns ErrCustomerNotFound if the customer does not exist.
	// Returns ErrInvalidEntity if the new balance violates storage constraints.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error

	// WithTx returns a new CustomerStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) CustomerStore
}
