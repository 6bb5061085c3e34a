// internal/store/memory.go
//
// In-memory session store for interactive solver loops.
//
// Characteristics:
//   - Stores *solver.Loop values keyed by a random UUID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Idle sessions can be swept by age.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown or deleted sessions.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Create registers a loop and returns its new ID.
	Create(ctx context.Context, l *solver.Loop) (string, error)

	// Get retrieves a loop by ID and marks it as recently used.
	Get(ctx context.Context, id string) (*solver.Loop, error)

	// Delete removes a session and reports whether it existed.
	// Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// Sweep drops sessions idle for longer than maxIdle and returns how many.
	Sweep(ctx context.Context, maxIdle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	loop     *solver.Loop
	lastUsed time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Create(ctx context.Context, l *solver.Loop) (string, error) {
	if l == nil {
		return "", errors.New("store: nil loop")
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{loop: l, lastUsed: m.now()}
	return id, nil
}

func (m *memory) Get(ctx context.Context, id string) (*solver.Loop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.lastUsed = m.now()
		return e.loop, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok, nil
}

func (m *memory) Sweep(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
