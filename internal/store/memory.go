// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Word search sessions are ephemeral by design: a live grid is never
// written to disk and is lost when the process restarts.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Update runs the callback under the write lock, so a claim's
//     read-check-write on a session is atomic across goroutines.
//   - View runs the callback under the read lock for snapshots.
//   - Save and Update stamp the session as touched; Idle lists sessions
//     untouched since a cutoff so the server can Delete them.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/game"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// View calls fn with the session while no Update can run.
	// fn must not retain or mutate the session.
	View(ctx context.Context, id string, fn func(*game.Session) error) error

	// Update calls fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Idle returns the IDs of sessions not saved or updated since before.
	Idle(ctx context.Context, before time.Time) ([]string, error)
}

type entry struct {
	s       *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex     // guards sessions and every session's state
	sessions map[string]entry // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = entry{s: s, touched: m.now()}
	return nil
}

func (m *memory) View(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.s)
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	m.sessions[id] = e
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Idle(ctx context.Context, before time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, e := range m.sessions {
		if e.touched.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
