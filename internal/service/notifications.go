package service

import (
	"context"
	"log/slog"

	"github.com/jmallis/purchase-api/internal/platform/logger"
)

// Registry names of the notification side-effect services.
const (
	SendEmailServiceName = "send_email"
	SendCRMServiceName   = "send_crm"
)

// SendEmailService sends a purchase confirmation email. The delivery
// backend is out of scope, so the implementation records the intent in the
// log; swapping in a real sender only requires registering a different
// factory under the same name.
type SendEmailService struct {
	logger *slog.Logger
}

// NewSendEmailService creates a SendEmailService.
func NewSendEmailService(log *slog.Logger) *SendEmailService {
	if log == nil {
		log = slog.Default()
	}
	return &SendEmailService{
		logger: log.With(slog.String("component", "send_email_service")),
	}
}

// Name implements Service.Name.
func (s *SendEmailService) Name() string {
	return SendEmailServiceName
}

// Execute implements Service.Execute.
func (s *SendEmailService) Execute(ctx context.Context) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("sending purchase confirmation email")
	return nil, nil
}

// SendCRMService pushes purchase data to the CRM. Like SendEmailService it
// is a logging stub standing in for the real integration.
type SendCRMService struct {
	logger *slog.Logger
}

// NewSendCRMService creates a SendCRMService.
func NewSendCRMService(log *slog.Logger) *SendCRMService {
	if log == nil {
		log = slog.Default()
	}
	return &SendCRMService{
		logger: log.With(slog.String("component", "send_crm_service")),
	}
}

// Name implements Service.Name.
func (s *SendCRMService) Name() string {
	return SendCRMServiceName
}

// Execute implements Service.Execute.
func (s *SendCRMService) Execute(ctx context.Context) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("sending purchase data to crm")
	return nil, nil
}
