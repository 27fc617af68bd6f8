package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmallis/purchase-api/internal/service"
)

// ErrUnknownService is returned when Resolve is asked for a name that was
// never registered. This is a wiring bug, not a business failure: it is
// deliberately outside the service error taxonomy so the logging decorator
// never treats it as an expected condition.
var ErrUnknownService = errors.New("unknown service")

// Args carries named construction arguments for a factory. Factories
// document the keys they expect; unknown keys are ignored.
type Args map[string]any

// Factory builds a ready-to-execute service instance from named
// construction arguments.
type Factory func(args Args) (service.Service, error)

// Registry maps service names to factories. It is built once at startup and
// passed by reference to the call sites that need deferred or substitutable
// construction; there is no package-level singleton. Registration is
// expected to happen during startup, resolution at call time, so reads far
// outnumber writes and Resolve only takes the read lock.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// New creates an empty Registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// Register stores a factory under the given name. Registering the same name
// again overwrites the previous factory; the overwrite is allowed as an
// intentional substitution point (tests swap in fakes this way) but is
// logged so accidental collisions surface in diagnostics.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		r.logger.Warn("overwriting registered service factory",
			slog.String("service", name))
	}
	r.factories[name] = factory

	r.logger.Debug("registered service factory",
		slog.String("service", name),
		slog.Int("factory_count", len(r.factories)))
}

// Resolve looks up the factory registered under name and invokes it with
// the supplied construction arguments, returning a ready service instance.
// Returns ErrUnknownService (wrapped with the name) if nothing was
// registered under that name.
func (r *Registry) Resolve(name string, args Args) (service.Service, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, name)
	}

	svc, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("failed to construct service %q: %w", name, err)
	}
	return svc, nil
}

// Names returns the currently registered service names. Intended for
// startup diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
