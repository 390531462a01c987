package render

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRegistry    = errors.New("backend registry is empty")
	ErrDuplicateBackend = errors.New("duplicate backend name")
	ErrUnknownBackend   = errors.New("unknown backend")
)

// Registry is the ordered list of backends the orchestrator walks.
// It is fixed at construction and read-only afterwards, so it needs no locking.
type Registry struct {
	backends []Backend
	byName   map[string]int
}

// NewRegistry builds a registry in priority order, first backend first.
func NewRegistry(backends ...Backend) (*Registry, error) {
	if len(backends) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		backends: make([]Backend, 0, len(backends)),
		byName:   make(map[string]int, len(backends)),
	}
	for i, b := range backends {
		if b == nil {
			return nil, fmt.Errorf("backend %d is nil", i)
		}
		name := b.Name()
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBackend, name)
		}
		r.byName[name] = len(r.backends)
		r.backends = append(r.backends, b)
	}
	return r, nil
}

// Backends returns the backends in priority order.
func (r *Registry) Backends() []Backend {
	out := make([]Backend, len(r.backends))
	copy(out, r.backends)
	return out
}

// Names returns the backend names in priority order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.backends))
	for i, b := range r.backends {
		out[i] = b.Name()
	}
	return out
}

// Get looks up a backend by name.
func (r *Registry) Get(name string) (Backend, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.backends[i], true
}

// Select returns a new registry restricted to names, in the order given.
func (r *Registry) Select(names []string) (*Registry, error) {
	picked := make([]Backend, 0, len(names))
	for _, name := range names {
		b, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
		}
		picked = append(picked, b)
	}
	return NewRegistry(picked...)
}
