package store

import (
	"context"
	"sync"

	"github.com/prepwise/backend/internal/domain/progress"
)

// MemoryStore keeps progress in process memory. It backs tests and the
// degraded mode the session layer falls into when the durable store fails.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*progress.State
}

var _ Store = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{states: make(map[string]*progress.State)}
}

// LoadProgress returns a deep copy so callers can never reach shared state.
func (m *MemoryStore) LoadProgress(_ context.Context, userKey string) (*progress.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[userKey]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

// SaveProgress stores a deep copy keyed by the state's user key.
func (m *MemoryStore) SaveProgress(_ context.Context, state *progress.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state.UserKey] = state.Clone()
	return nil
}

// ListProgress returns copies of every stored state.
func (m *MemoryStore) ListProgress(_ context.Context) ([]*progress.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*progress.State, 0, len(m.states))
	for _, state := range m.states {
		out = append(out, state.Clone())
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
