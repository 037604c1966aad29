package views

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a view; it runs the first time the view's route is visited
type Factory func(deps Deps) (View, error)

// Registry stores the mapping of view keys to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a view key; registering a key twice is an error
func (r *Registry) Register(key string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("view %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// Get retrieves the factory for a view key
func (r *Registry) Get(key string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[key]
	return factory, ok
}

// Keys lists registered view keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Loader returns a function that builds the view for key with deps
func (r *Registry) Loader(key string, deps Deps) func() (View, error) {
	return func() (View, error) {
		factory, ok := r.Get(key)
		if !ok {
			return nil, fmt.Errorf("view %q is not registered", key)
		}
		view, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("load view %q: %w", key, err)
		}
		return view, nil
	}
}
