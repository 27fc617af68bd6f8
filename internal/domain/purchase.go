package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common purchase request validation errors
var (
	ErrEmptyRequestProduct = errors.New("purchase request product ID cannot be empty")
	ErrNonPositiveCount    = errors.New("purchase request count must be positive")
)

// PurchaseRequest is the immutable input value for a purchase operation:
// which product and how many units. It is constructed once per call and
// never persisted.
type PurchaseRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Count     int       `json:"count"`
}

// NewPurchaseRequest creates a validated PurchaseRequest.
// Returns an error if the product ID is empty or the count is not positive.
func NewPurchaseRequest(productID uuid.UUID, count int) (PurchaseRequest, error) {
	req := PurchaseRequest{
		ProductID: productID,
		Count:     count,
	}

	if err := req.Validate(); err != nil {
		return PurchaseRequest{}, err
	}

	return req, nil
}

// Validate checks if the PurchaseRequest has valid data.
func (r PurchaseRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return ErrEmptyRequestProduct
	}

	if r.Count <= 0 {
		return ErrNonPositiveCount
	}

	return nil
}

// PurchaseResult is the immutable output value of a successful purchase:
// the product bought, the quantity, and the customer's post-purchase
// balance. It is returned to the caller and never persisted.
type PurchaseResult struct {
	ProductID uuid.UUID `json:"product"`
	Count     int       `json:"count"`
	Balance   int64     `json:"balance"`
}
