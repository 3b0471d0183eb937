package memory

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/stepwise/pkg/domain"
)

// DefaultCapacity bounds the number of sessions kept by NewStore.
const DefaultCapacity = 1024

// Store implements ports.StateStore in memory.
// It keeps at most a fixed number of sessions, evicting the least recently
// used one when full. Safe for concurrent use.
type Store struct {
	data *lru.Cache[string, *domain.State]
}

// NewStore creates a store with DefaultCapacity.
func NewStore() *Store {
	s, _ := NewStoreWithCapacity(DefaultCapacity)
	return s
}

// NewStoreWithCapacity creates a store holding up to capacity sessions.
func NewStoreWithCapacity(capacity int) (*Store, error) {
	cache, err := lru.New[string, *domain.State](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &Store{data: cache}, nil
}

// Save persists a copy of the state.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	s.data.Add(sessionID, state.Snapshot())
	return nil
}

// Load returns a copy so callers cannot mutate stored state through the pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	state, ok := s.data.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.data.Remove(sessionID)
	return nil
}

// List returns stored sessions, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.data.Keys(), nil
}
