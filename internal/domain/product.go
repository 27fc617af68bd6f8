package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common product validation errors
var (
	ErrEmptyProductID   = errors.New("product ID cannot be empty")
	ErrEmptyProductName = errors.New("product name cannot be empty")
	ErrNonPositivePrice = errors.New("product price must be positive")
	ErrNegativeStock    = errors.New("product stock count cannot be negative")
)

// Product represents a purchasable item. Price is held in currency-agnostic
// minor units. Count is the current stock level; Available is an
// availability flag independent of stock, so a product can be in stock yet
// withdrawn from sale.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Count     int       `json:"count"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct creates a new Product with the given name, price and initial
// stock count. New products are available by default. Returns an error if
// validation fails.
func NewProduct(name string, price int64, count int) (*Product, error) {
	product := &Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Count:     count,
		Available: true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
// Returns an error if any field fails validation.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProductID
	}

	if p.Name == "" {
		return ErrEmptyProductName
	}

	if p.Price <= 0 {
		return ErrNonPositivePrice
	}

	if p.Count < 0 {
		return ErrNegativeStock
	}

	return nil
}
