package memstate

import (
	"context"
	"testing"

	"driftworld/internal/domain/world"
)

func TestStore_SaveLoadIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()

	st := world.ZoneState{
		Entities: []string{"ent-1"},
		State:    map[string]any{"visits": 1},
	}
	if err := s.Save(ctx, "zone_0_0", st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the original after saving must not reach the store.
	st.State["visits"] = 99

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded["zone_0_0"].State["visits"] != 1 {
		t.Fatalf("store shares memory with caller: %v", loaded["zone_0_0"].State)
	}

	// And mutating a loaded copy must not reach the next reader.
	loaded["zone_0_0"].State["visits"] = 42
	again, _ := s.Load(ctx)
	if again["zone_0_0"].State["visits"] != 1 {
		t.Fatalf("loaded copies share memory: %v", again["zone_0_0"].State)
	}
}

func TestSeed_VisibleToLoad(t *testing.T) {
	s := New()
	s.Seed("zone_3_3", world.ZoneState{State: map[string]any{"boss_defeated": true}})

	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded["zone_3_3"].State["boss_defeated"] != true {
		t.Fatalf("seeded state missing: %v", loaded)
	}
}
