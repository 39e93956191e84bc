package pms

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// EngineFactory builds an Engine from a backend profile file.
type EngineFactory func(ctx context.Context, profilePath string) (Engine, error)

// Registry manages backend engine factories and selects the active one
// from configuration.
type Registry interface {
	// Register adds a new backend factory under its configuration name.
	Register(backend string, factory EngineFactory) error
	// Create instantiates the engine for the named backend. An absent or
	// unknown name is a configuration failure, raised before any report
	// work begins.
	Create(ctx context.Context, backend, profilePath string) (Engine, error)
	// ListBackends returns the registered backend names.
	ListBackends() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]EngineFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[string]EngineFactory) Registry {
	r := &registry{factories: make(map[string]EngineFactory)}
	for backend, factory := range factories {
		r.factories[backend] = factory
	}
	return r
}

func (r *registry) Register(backend string, factory EngineFactory) error {
	if backend == "" {
		return fmt.Errorf("backend name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[backend]; exists {
		return fmt.Errorf("backend %q is already registered", backend)
	}

	r.factories[backend] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, backend, profilePath string) (Engine, error) {
	if backend == "" {
		return nil, ConfigurationError("no backend selected")
	}

	r.mu.RLock()
	factory, exists := r.factories[strings.ToLower(backend)]
	r.mu.RUnlock()

	if !exists {
		return nil, ConfigurationError(fmt.Sprintf("unknown backend %q", backend))
	}

	return factory(ctx, profilePath)
}

func (r *registry) ListBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	backends := make([]string, 0, len(r.factories))
	for backend := range r.factories {
		backends = append(backends, backend)
	}
	return backends
}
