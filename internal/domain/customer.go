package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common customer validation errors
var (
	ErrEmptyCustomerID   = errors.New("customer ID cannot be empty")
	ErrNegativeBalance   = errors.New("customer balance cannot be negative")
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
)

// Customer represents a registered customer with a spendable balance.
// Balance is held in currency-agnostic minor units and is mutated only
// by successful purchase transactions.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer creates a new Customer with the given name and starting balance.
// It generates a new UUID for the customer ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCustomer(name string, balance int64) (*Customer, error) {
	customer := &Customer{
		ID:        uuid.New(),
		Name:      name,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return customer, nil
}

// Validate checks if the Customer has valid data.
// Returns an error if any field fails validation.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCustomerID
	}

	if c.Name == "" {
		return ErrEmptyCustomerName
	}

	if c.Balance < 0 {
		return ErrNegativeBalance
	}

	return nil
}
