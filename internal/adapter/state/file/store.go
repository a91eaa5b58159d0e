// Package filestate persists zone state as a single JSON document on disk.
// Good enough for single-host runs; the gorm store covers everything else.
package filestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type Store struct {
	path string

	mu     sync.Mutex
	states map[string]world.ZoneState
	loaded bool
}

func New(path string) *Store {
	return &Store{path: path, states: map[string]world.ZoneState{}}
}

// Load reads the document once and serves copies afterwards. A missing file is
// an empty world, not an error.
func (s *Store) Load(_ context.Context) (map[string]world.ZoneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		raw, err := os.ReadFile(s.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read zone states %s: %w", s.path, err)
		default:
			if err := json.Unmarshal(raw, &s.states); err != nil {
				return nil, fmt.Errorf("decode zone states %s: %w", s.path, err)
			}
		}
		s.loaded = true
	}

	out := make(map[string]world.ZoneState, len(s.states))
	for id, st := range s.states {
		out[id] = st.Clone()
	}
	return out, nil
}

// Save updates one zone and rewrites the document through a temp file and
// rename, so a crash mid-write never leaves a truncated store behind.
func (s *Store) Save(_ context.Context, zoneID string, st world.ZoneState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[zoneID] = st.Clone()
	return s.writeLocked()
}

func (s *Store) writeLocked() error {
	raw, err := json.MarshalIndent(s.states, "", "  ")
	if err != nil {
		return fmt.Errorf("encode zone states: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write zone states: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace zone states: %w", err)
	}
	return nil
}

var _ ports.ZoneStateStore = (*Store)(nil)
