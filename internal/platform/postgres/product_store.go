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

// ProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type ProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProductStore creates a new PostgreSQL implementation of the
// store.ProductStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewProductStore(db store.DBTX, logger *slog.Logger) *ProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure ProductStore implements store.ProductStore interface
var _ store.ProductStore = (*ProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *ProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &ProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProductStore.Create
// It saves a new product to the database, handling domain validation.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		INSERT INTO products (id, name, price, count, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Count,
		product.Available,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate product ID during creation",
				slog.String("error", err.Error()),
				slog.String("product_id", product.ID.String()))
			return fmt.Errorf("%w: product with ID %s already exists",
				store.ErrInvalidEntity, product.ID)
		}

		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	log.Info("product created successfully",
		slog.String("product_id", product.ID.String()),
		slog.String("name", product.Name))
	return nil
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.getByID(ctx, id, false)
}

// GetByIDForUpdate implements store.ProductStore.GetByIDForUpdate
// It locks the product row for the remainder of the surrounding
// transaction, so stock checks stay valid until commit.
func (s *ProductStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.getByID(ctx, id, true)
}

func (s *ProductStore) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving product by ID",
		slog.String("product_id", id.String()),
		slog.Bool("for_update", forUpdate))

	query := `
		SELECT id, name, price, count, available, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var product domain.Product

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Count,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, err
	}

	return &product, nil
}

// UpdateCount implements store.ProductStore.UpdateCount
// Returns store.ErrProductNotFound if the product does not exist.
// Returns store.ErrInvalidEntity if the count violates the table's
// non-negative check constraint.
func (s *ProductStore) UpdateCount(ctx context.Context, id uuid.UUID, count int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating product stock count",
		slog.String("product_id", id.String()),
		slog.Int("count", count))

	query := `
		UPDATE products
		SET count = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, count, time.Now().UTC(), id)
	if err != nil {
		if isCheckViolation(err) {
			log.Warn("stock update rejected by check constraint",
				slog.String("error", err.Error()),
				slog.String("product_id", id.String()),
				slog.Int("count", count))
			return fmt.Errorf("%w: stock count must be non-negative", store.ErrInvalidEntity)
		}
		log.Error("failed to update product stock count",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("product not found for stock update",
			slog.String("product_id", id.String()))
		return store.ErrProductNotFound
	}

	log.Debug("product stock count updated",
		slog.String("product_id", id.String()),
		slog.Int("count", count))
	return nil
}
