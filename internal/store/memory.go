// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for development and tests, or when durability is not required.
//
// Characteristics:
//   - Keeps JSON snapshots keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/robalobadob/wordgrid/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards games
	games  map[string][]byte // keyed by Session.ID
	locker *keyedMutex
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string][]byte), locker: newKeyedMutex()}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[s.ID] = data
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(data)
}

func (m *memory) List(ctx context.Context, playerID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Summary{}
	for _, data := range m.games {
		s, err := decode(data)
		if err != nil {
			return nil, err
		}
		if _, ok := s.Scores[playerID]; ok {
			out = append(out, summarize(s, playerID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	return m.locker.lock(ctx, id)
}

func (m *memory) Close() error { return nil }
