package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultKey is the namespace key of the persisted favorites record.
const DefaultKey = "radcon-favorites"

var toggles = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schedule_favorite_toggles_total",
		Help: "Favorite toggles by action (added, removed)",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(toggles)
}

// Backend is a durable key/value record store.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Put overwrites the value stored under key.
	Put(key string, value []byte) error
}

// Store is the set of favorited panel IDs of one visitor.
type Store struct {
	backend Backend
	key     string

	mu    sync.RWMutex
	ids   []string
	index map[string]struct{}
}

// Load reads the favorites record under key. A missing, unreadable or
// malformed record yields an empty store.
func Load(backend Backend, key string) *Store {
	s := &Store{
		backend: backend,
		key:     key,
		index:   make(map[string]struct{}),
	}

	data, ok, err := backend.Get(key)
	if err != nil {
		slog.Warn("favorites: read failed, starting empty", "key", key, "error", err)
		return s
	}
	if !ok {
		return s
	}

	ids, err := decode(data)
	if err != nil {
		slog.Warn("favorites: malformed record, starting empty", "key", key, "error", err)
		return s
	}
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

func decode(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Toggle flips the membership of id and persists the whole set before
// returning the new membership. If the write fails the set is left as it was.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, was := s.index[id]

	next := make([]string, 0, len(s.ids)+1)
	for _, existing := range s.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	if !was {
		next = append(next, id)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return was, fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.backend.Put(s.key, data); err != nil {
		return was, fmt.Errorf("persist favorites %s: %w", s.key, err)
	}

	s.ids = next
	if was {
		delete(s.index, id)
		toggles.WithLabelValues("removed").Inc()
	} else {
		s.index[id] = struct{}{}
		toggles.WithLabelValues("added").Inc()
	}
	return !was, nil
}

func (s *Store) IsFavorited(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// HasAny reports whether at least one panel is favorited.
func (s *Store) HasAny() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids) > 0
}

// IDs returns the favorited IDs in the order they were added.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Key returns the namespace key the store persists under.
func (s *Store) Key() string {
	return s.key
}
