// Package memstate keeps zone state in process memory. It backs tests and
// ephemeral worlds where nothing should outlive the run.
package memstate

import (
	"context"
	"sync"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type Store struct {
	mu     sync.RWMutex
	states map[string]world.ZoneState
}

func New() *Store {
	return &Store{states: make(map[string]world.ZoneState)}
}

// Seed places a state before the world boots, for tests and tooling.
func (s *Store) Seed(zoneID string, st world.ZoneState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[zoneID] = st.Clone()
}

func (s *Store) Load(_ context.Context) (map[string]world.ZoneState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]world.ZoneState, len(s.states))
	for id, st := range s.states {
		out[id] = st.Clone()
	}
	return out, nil
}

func (s *Store) Save(_ context.Context, zoneID string, st world.ZoneState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[zoneID] = st.Clone()
	return nil
}

var _ ports.ZoneStateStore = (*Store)(nil)
