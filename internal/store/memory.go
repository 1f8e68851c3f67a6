// internal/store/memory.go
//
// In-memory registry of live game sessions.
// Sessions are ephemeral by nature: state is lost when the process restarts.
//
// Characteristics:
//   - Entries keyed by session ID in a map.
//   - Concurrency-safe via RWMutex.
//   - Tracks last access so idle sessions can be swept.
//   - Missing IDs return ErrNotFound.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/cosmic-word/internal/game"
	"github.com/robalobadob/cosmic-word/internal/sse"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Entry bundles a session with its event hub.
type Entry struct {
	ID      string
	Session *game.Session
	Hub     *sse.Hub
	Created time.Time
}

// Store defines the registry interface for live sessions.
type Store interface {
	// Save adds or replaces an entry.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID and marks it as used.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes an entry. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) (*Entry, error)

	// Sweep removes entries not used for longer than idle and returns them.
	Sweep(ctx context.Context, idle time.Duration) []*Entry

	// Len returns the number of stored entries.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	seen    map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{
		entries: make(map[string]*Entry),
		seen:    make(map[string]time.Time),
		now:     now,
	}
}

func (m *memory) Save(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	m.seen[e.ID] = m.now()
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.seen[id] = m.now()
	return e, nil
}

func (m *memory) Delete(ctx context.Context, id string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.entries, id)
	delete(m.seen, id)
	return e, nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-idle)
	var out []*Entry
	for id, last := range m.seen {
		if last.Before(cutoff) {
			out = append(out, m.entries[id])
			delete(m.entries, id)
			delete(m.seen, id)
		}
	}
	return out
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
