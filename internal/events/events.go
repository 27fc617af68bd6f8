package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the purchase workflow.
const (
	// TypePurchaseCompleted is emitted strictly after a purchase
	// transaction has committed.
	TypePurchaseCompleted = "purchase_completed"
)

// Event represents something that happened in the purchase workflow.
// It carries its payload as JSON so handlers stay decoupled from the
// emitting package's types.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what happened
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseCompletedPayload is the payload of a TypePurchaseCompleted event.
type PurchaseCompletedPayload struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Count      int    `json:"count"`
	TotalPrice int64  `json:"total_price"`
	Balance    int64  `json:"balance"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// Handler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
