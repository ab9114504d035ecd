package plugin

import (
	"fmt"
	"sync"
)

// Registry manages builder registration. Builders are returned in
// registration order because the host runs them in that order.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
	order    []string
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// Register adds a builder to the registry.
// Returns an error if a builder with the same name already exists.
func (r *Registry) Register(b Builder) error {
	if b == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := b.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.builders[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered as %s", metadata.Name, existing.Metadata())
	}

	r.builders[metadata.Name] = b
	r.order = append(r.order, metadata.Name)
	return nil
}

// Get retrieves a builder by name.
func (r *Registry) Get(name string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return b, nil
}

// List returns all registered builders in registration order.
func (r *Registry) List() []Builder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Builder, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.builders[name])
	}
	return result
}

// Has checks if a builder with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[name]
	return ok
}

// Unregister removes a builder from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builders[name]; !ok {
		return fmt.Errorf("plugin %s not found", name)
	}
	delete(r.builders, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered builders.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builders)
}

// globalRegistry is the default plugin registry used by the CLI.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a builder to the global registry.
func Register(b Builder) error {
	return globalRegistry.Register(b)
}
