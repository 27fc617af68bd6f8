package task

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jmallis/purchase-api/internal/service"
)

// NotificationTask executes one notification side-effect service in the
// background. The wrapped service runs through the error-logging decorator
// so any taxonomy error it raises is logged with full context; the failure
// never propagates back to the purchase that triggered it.
type NotificationTask struct {
	id      uuid.UUID
	svc     service.Service
	payload []byte

	mu     sync.Mutex
	status Status
}

// NewNotificationTask creates a task that will run the given notification
// service. payload is the serialized event that triggered the notification,
// retained for diagnostics.
func NewNotificationTask(svc service.Service, payload []byte, logger *slog.Logger) *NotificationTask {
	return &NotificationTask{
		id:      uuid.New(),
		svc:     service.WithErrorLogging(svc, logger),
		payload: payload,
		status:  StatusPending,
	}
}

// ID implements Task.ID.
func (t *NotificationTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *NotificationTask) Type() string {
	return TypeNotification
}

// Payload implements Task.Payload.
func (t *NotificationTask) Payload() []byte {
	return t.payload
}

// Status implements Task.Status.
func (t *NotificationTask) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// ServiceName returns the name of the wrapped notification service.
func (t *NotificationTask) ServiceName() string {
	return t.svc.Name()
}

// Execute implements Task.Execute by invoking the wrapped service.
func (t *NotificationTask) Execute(ctx context.Context) error {
	t.setStatus(StatusProcessing)

	if _, err := t.svc.Execute(ctx); err != nil {
		t.setStatus(StatusFailed)
		return err
	}

	t.setStatus(StatusCompleted)
	return nil
}

func (t *NotificationTask) setStatus(status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}
