// internal/store/store.go
//
// Persistence interface for game sessions.
// Implementations:
//   - Memory (this package): map-backed, process-local.
//   - SQLite: durable, shares the accounts/daily database.
//   - Redis: shared across server replicas, with a distributed move lock.
//
// Sessions are stored as JSON snapshots; Get always returns a fresh copy, so
// callers mutate their own value and Save it back under Lock.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
)

var (
	// ErrNotFound is returned by Get for an unknown game id.
	ErrNotFound = errors.New("game not found")
	// ErrLocked is returned when a move lock cannot be taken in time.
	ErrLocked = errors.New("game is locked")
)

// UnlockFunc releases a lock taken with Store.Lock.
type UnlockFunc func()

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// List returns the most recently updated sessions playerID takes part in.
	List(ctx context.Context, playerID string, limit int) ([]Summary, error)

	// Lock serializes moves on one game. It blocks until the lock is held
	// or ctx is done.
	Lock(ctx context.Context, id string) (UnlockFunc, error)

	Close() error
}

// Summary is the per-player listing row for a session.
type Summary struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Outcome   string    `json:"outcome"`
	MovesMade int       `json:"movesMade"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultListLimit caps List when limit <= 0.
const DefaultListLimit = 50

func summarize(s *game.Session, playerID string) Summary {
	return Summary{
		ID:        s.ID,
		Mode:      string(s.Mode),
		Outcome:   string(s.Outcome),
		MovesMade: s.MovesMade,
		Score:     s.Scores[playerID],
		UpdatedAt: s.UpdatedAt,
	}
}

func encode(s *game.Session) ([]byte, error) {
	if s == nil || s.ID == "" {
		return nil, errors.New("store: session without id")
	}
	return json.Marshal(s)
}

func decode(data []byte) (*game.Session, error) {
	var s game.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// keyedMutex hands out one lock per key. Channels rather than sync.Mutex so
// waiting honours ctx. An entry lives only while someone holds or waits for
// its key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*keyedEntry{}}
}

func (k *keyedMutex) lock(ctx context.Context, key string) (UnlockFunc, error) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				k.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		k.release(key, e)
		return nil, errors.Join(ErrLocked, ctx.Err())
	}
}

func (k *keyedMutex) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if e.refs--; e.refs == 0 {
		delete(k.locks, key)
	}
}
