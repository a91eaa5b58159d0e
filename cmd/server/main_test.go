package main

import (
	"os"
	"testing"

	"go.uber.org/zap"

	filestate "driftworld/internal/adapter/state/file"
	memstate "driftworld/internal/adapter/state/memory"
	"driftworld/internal/config"
)

func TestConfigPath_DefaultsToLocalYAML(t *testing.T) {
	restoreArgs(t)
	os.Args = []string{"server"}

	if got, want := configPath(), "config.yaml"; got != want {
		t.Fatalf("configPath() = %q, want %q", got, want)
	}
}

func TestConfigPath_UsesFirstArg(t *testing.T) {
	restoreArgs(t)
	os.Args = []string{"server", "/etc/driftworld.yaml"}

	if got, want := configPath(), "/etc/driftworld.yaml"; got != want {
		t.Fatalf("configPath() = %q, want %q", got, want)
	}
}

func TestBuildStateStore_FileWhenPathSet(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = ""
	cfg.StatePath = t.TempDir() + "/state.json"

	store := buildStateStore(cfg, zap.NewNop())
	if _, ok := store.(*filestate.Store); !ok {
		t.Fatalf("buildStateStore returned %T, want *filestate.Store", store)
	}
}

func TestBuildStateStore_MemoryFallback(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = ""
	cfg.StatePath = ""

	store := buildStateStore(cfg, zap.NewNop())
	if _, ok := store.(*memstate.Store); !ok {
		t.Fatalf("buildStateStore returned %T, want *memstate.Store", store)
	}
}

func restoreArgs(t *testing.T) {
	t.Helper()
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
}
