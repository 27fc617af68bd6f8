package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/domain"
	"github.com/jmallis/purchase-api/internal/platform/logger"
	"github.com/jmallis/purchase-api/internal/store"
)

// CustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type CustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCustomerStore creates a new PostgreSQL implementation of the
// store.CustomerStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewCustomerStore(db store.DBTX, logger *slog.Logger) *CustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure CustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*CustomerStore)(nil)

// WithTx implements store.CustomerStore.WithTx
func (s *CustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return &CustomerStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CustomerStore.Create
// It saves a new customer to the database, handling domain validation.
func (s *CustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	query := `
		INSERT INTO customers (id, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Balance,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate customer ID during creation",
				slog.String("error", err.Error()),
				slog.String("customer_id", customer.ID.String()))
			return fmt.Errorf("%w: customer with ID %s already exists",
				store.ErrInvalidEntity, customer.ID)
		}

		log.Error("failed to create customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	log.Info("customer created successfully",
		slog.String("customer_id", customer.ID.String()))
	return nil
}

// GetByID implements store.CustomerStore.GetByID
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *CustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.getByID(ctx, id, false)
}

// GetByIDForUpdate implements store.CustomerStore.GetByIDForUpdate
// It locks the customer row for the remainder of the surrounding
// transaction, so balance checks stay valid until commit.
func (s *CustomerStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.getByID(ctx, id, true)
}

func (s *CustomerStore) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving customer by ID",
		slog.String("customer_id", id.String()),
		slog.Bool("for_update", forUpdate))

	query := `
		SELECT id, name, balance, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var customer domain.Customer

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Balance,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("customer not found", slog.String("customer_id", id.String()))
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by ID",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return nil, err
	}

	return &customer, nil
}

// UpdateBalance implements store.CustomerStore.UpdateBalance
// Returns store.ErrCustomerNotFound if the customer does not exist.
// Returns store.ErrInvalidEntity if the balance violates the table's
// non-negative check constraint.
func (s *CustomerStore) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating customer balance",
		slog.String("customer_id", id.String()),
		slog.Int64("balance", balance))

	query := `
		UPDATE customers
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, balance, time.Now().UTC(), id)
	if err != nil {
		if isCheckViolation(err) {
			log.Warn("balance update rejected by check constraint",
				slog.String("error", err.Error()),
				slog.String("customer_id", id.String()),
				slog.Int64("balance", balance))
			return fmt.Errorf("%w: balance must be non-negative", store.ErrInvalidEntity)
		}
		log.Error("failed to update customer balance",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("customer not found for balance update",
			slog.String("customer_id", id.String()))
		return store.ErrCustomerNotFound
	}

	log.Debug("customer balance updated",
		slog.String("customer_id", id.String()),
		slog.Int64("balance", balance))
	return nil
}
