package service

import (
	"context"
	"log/slog"

	"github.com/jmallis/purchase-api/internal/platform/logger"
)

// loggedService wraps another Service and instruments its failures.
type loggedService struct {
	svc    Service
	logger *slog.Logger
}

// WithErrorLogging wraps a service so that every taxonomy error it raises is
// logged exactly once with full structured context before being returned
// unchanged. Successful calls and non-taxonomy errors pass through silently;
// this layer instruments expected business failures, not infrastructure
// faults. The wrapper is transparent to both the call signature and the
// return value, so it composes with any Service.
func WithErrorLogging(svc Service, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &loggedService{
		svc:    svc,
		logger: log,
	}
}

// Name implements Service.Name by delegating to the wrapped service.
func (s *loggedService) Name() string {
	return s.svc.Name()
}

// Execute implements Service.Execute. The wrapped service's result and
// error are returned untouched in every case.
func (s *loggedService) Execute(ctx context.Context) (any, error) {
	result, err := s.svc.Execute(ctx)
	if err == nil {
		return result, nil
	}

	svcErr, ok := AsError(err)
	if !ok {
		return result, err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	// The record names the service that raised the error, which may be a
	// collaborator of the wrapped service.
	serviceName := svcErr.Service
	if serviceName == "" {
		serviceName = s.svc.Name()
	}

	attrs := make([]slog.Attr, 0, 3+len(svcErr.Context))
	attrs = append(attrs,
		slog.String("service", serviceName),
		slog.String("error_kind", svcErr.KindName()),
		slog.String("message", svcErr.ResolvedMessage()),
	)
	for _, key := range sortedContextKeys(svcErr.Context) {
		attrs = append(attrs, slog.Any(key, svcErr.Context[key]))
	}

	log.LogAttrs(ctx, slog.LevelError, "service error", attrs...)

	return result, err
}
