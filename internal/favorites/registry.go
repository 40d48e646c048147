package favorites

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultActiveVisitors caps how many visitor stores stay in memory.
const DefaultActiveVisitors = 4096

// Registry hands out visitor stores over a shared backend. Each visitor's
// record lives under "<prefix>:<visitor>".
//
// Only visitors with favorites are kept, and only the most recently used
// ones. Everyone else is read from the backend on each call.
type Registry struct {
	backend Backend
	prefix  string
	active  *lru.Cache[string, *Store]
}

func NewRegistry(backend Backend, prefix string) *Registry {
	return NewRegistrySize(backend, prefix, DefaultActiveVisitors)
}

// NewRegistrySize is NewRegistry with an explicit cache size.
func NewRegistrySize(backend Backend, prefix string, size int) *Registry {
	if prefix == "" {
		prefix = DefaultKey
	}
	if size <= 0 {
		size = DefaultActiveVisitors
	}
	active, _ := lru.New[string, *Store](size) // only fails on size <= 0
	return &Registry{
		backend: backend,
		prefix:  prefix,
		active:  active,
	}
}

func (r *Registry) key(visitor string) string {
	return r.prefix + ":" + visitor
}

// For returns the visitor's store for reading. A visitor with no favorites
// gets a fresh, unretained store.
func (r *Registry) For(visitor string) *Store {
	if s, ok := r.active.Get(visitor); ok {
		return s
	}
	s := Load(r.backend, r.key(visitor))
	if !s.HasAny() {
		return s
	}
	return r.retain(visitor, s)
}

// Retain returns the store toggles must go through. It stays cached so
// concurrent toggles of one visitor share a single Store.
func (r *Registry) Retain(visitor string) *Store {
	if s, ok := r.active.Get(visitor); ok {
		return s
	}
	return r.retain(visitor, Load(r.backend, r.key(visitor)))
}

func (r *Registry) retain(visitor string, s *Store) *Store {
	if prev, ok, _ := r.active.PeekOrAdd(visitor, s); ok {
		return prev
	}
	return s
}

// Active reports how many visitor stores are held in memory.
func (r *Registry) Active() int {
	return r.active.Len()
}
