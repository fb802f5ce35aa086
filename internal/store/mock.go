package store

import (
	"context"
	"sync"

	"lifequest/finance-engine/internal/models"
)

// Mock is an in-memory Store for tests. It counts saves so tests can assert
// that redundant writes are avoided, and can be primed to fail.
type Mock struct {
	mu      sync.Mutex
	states  map[string]models.FinanceState
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMock returns an empty in-memory store.
func NewMock() *Mock {
	return &Mock{states: map[string]models.FinanceState{}}
}

// Seed places a state for a user key without counting as a save.
func (m *Mock) Seed(userKey string, state models.FinanceState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userKey] = state
}

func (m *Mock) Load(ctx context.Context, userKey string) (models.FinanceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return models.FinanceState{}, m.LoadErr
	}
	state, ok := m.states[userKey]
	if !ok {
		return models.FinanceState{}, ErrNotFound
	}
	return state, nil
}

func (m *Mock) Save(ctx context.Context, userKey string, state models.FinanceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.states[userKey] = state
	return nil
}

// UserKeys lists the seeded and saved user keys.
func (m *Mock) UserKeys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.states))
	for key := range m.states {
		keys = append(keys, key)
	}
	return keys, nil
}

// State returns the stored state for assertions.
func (m *Mock) State(userKey string) (models.FinanceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[userKey]
	return state, ok
}
