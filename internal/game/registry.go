package game

import (
	"fmt"
	"sync"
)

// Registry manages engine registration and lookup by game name.
type Registry struct {
	engines map[string]Engine
	mu      sync.RWMutex
}

// NewRegistry creates a new game registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

// Register adds an engine to the registry.
// An engine with the same name replaces the previous one.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return fmt.Errorf("cannot register nil engine")
	}
	if e.Name() == "" {
		return fmt.Errorf("engine name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[e.Name()] = e
	return nil
}

// Get retrieves an engine by its game name.
func (r *Registry) Get(name string) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[name]
	return e, ok
}

// Names returns all registered game names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered engines.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}
