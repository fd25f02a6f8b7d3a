package store

import (
	"sync"

	"rabbitcare/internal/game"
)

// Store is the local save slot. Load reports ok=false when no usable save
// exists, which callers treat as a fresh game rather than an error.
type Store interface {
	Load() (game.State, bool, error)
	Save(game.State) error
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.Mutex
	state *game.State
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() (game.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return game.State{}, false, nil
	}
	return s.state.Clone(), true, nil
}

func (s *MemStore) Save(st game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := st.Clone()
	s.state = &c
	return nil
}
