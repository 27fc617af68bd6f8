package task

import (
	"context"
	"log/slog"

	"github.com/jmallis/purchase-api/internal/events"
	"github.com/jmallis/purchase-api/internal/registry"
)

// PurchaseEventHandler implements the events.Handler interface. On every
// purchase-completed event it resolves the configured notification services
// from the registry, wraps each one in a NotificationTask, and enqueues
// them for background execution.
//
// Notifications are best-effort: a full queue or an unresolvable service is
// logged and the remaining notifiers still run. The handler never returns
// an error for those conditions, so the emitter does not surface them to
// the purchase path.
type PurchaseEventHandler struct {
	registry  *registry.Registry
	queue     QueueWriter
	notifiers []string
	logger    *slog.Logger
}

// NewPurchaseEventHandler creates an event handler that fans a purchase
// event out to the notification services named in notifiers.
func NewPurchaseEventHandler(
	reg *registry.Registry,
	queue QueueWriter,
	notifiers []string,
	logger *slog.Logger,
) *PurchaseEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurchaseEventHandler{
		registry:  reg,
		queue:     queue,
		notifiers: notifiers,
		logger:    logger.With(slog.String("component", "purchase_event_handler")),
	}
}

// HandleEvent processes purchase-completed events; other event types are
// ignored.
func (h *PurchaseEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypePurchaseCompleted {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	for _, name := range h.notifiers {
		svc, err := h.registry.Resolve(name, registry.Args{})
		if err != nil {
			// A missing notifier is a wiring problem, but the purchase has
			// already committed, so surface it in the log and move on.
			h.logger.Error("failed to resolve notification service",
				"error", err.Error(),
				"service", name,
				"event_id", event.ID)
			continue
		}

		t := NewNotificationTask(svc, event.Payload, h.logger)
		if err := h.queue.Enqueue(t); err != nil {
			h.logger.Warn("dropping notification task",
				"error", err.Error(),
				"service", name,
				"task_id", t.ID(),
				"event_id", event.ID)
			continue
		}

		h.logger.Debug("notification task enqueued",
			"service", name,
			"task_id", t.ID(),
			"event_id", event.ID)
	}

	return nil
}

// Ensure PurchaseEventHandler implements events.Handler
var _ events.Handler = (*PurchaseEventHandler)(nil)
