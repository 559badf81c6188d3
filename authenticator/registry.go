package authenticator

import (
	"fmt"
	"sort"
)

// Registry holds the configured identity providers keyed by provider id.
// It is built once at startup and only read afterwards.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry registers the given providers. Provider ids must be unique.
func NewRegistry(list ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(list))}
	for _, p := range list {
		id := p.ID()
		if id == "" {
			return nil, fmt.Errorf("provider %q has no id", p.Name())
		}
		if _, exists := r.providers[id]; exists {
			return nil, fmt.Errorf("duplicate provider id: %s", id)
		}
		r.providers[id] = p
		r.order = append(r.order, id)
	}
	return r, nil
}

// Get returns the provider by id or ErrUnknownProvider
func (r *Registry) Get(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}
	return p, nil
}

// Default returns the first registered provider
func (r *Registry) Default() (Provider, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	return r.providers[r.order[0]], true
}

// All returns the providers in registration order
func (r *Registry) All() []Provider {
	list := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.providers[id])
	}
	return list
}

// IDs returns the registered provider ids sorted alphabetically
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
