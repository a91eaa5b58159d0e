package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"driftworld/internal/domain/world"
)

func (c *fakeCatalog) calls(b world.Biome) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.randomCalls[b]
}

// tickUntil drives the streamer until cond holds or the deadline passes.
// Async builds land on the tick after their worker finishes, so convergence
// takes a few rounds.
func tickUntil(t *testing.T, s *Streamer, x, y float64, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Tick(context.Background(), x, y)
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("streamer did not converge: %d resident", s.ResidentCount())
}

func TestAsync_WindowFillsEventually(t *testing.T) {
	cfg := testConfig()
	cfg.InitialRadius = 1
	cfg.MaxRadius = 1
	cfg.Workers = 4
	s := New(cfg)

	tickUntil(t, s, 0, 0, func() bool { return s.ResidentCount() == 9 })

	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			require.True(t, s.Resident(world.ZoneCoord{X: x, Y: y}), "cell (%d,%d)", x, y)
		}
	}
	activeSetMatchesTable(t, s)
}

func TestAsync_OneBuildPerCoordinate(t *testing.T) {
	catalog := fullForestCatalog()
	cfg := testConfig()
	cfg.InitialRadius = 1
	cfg.MaxRadius = 1
	cfg.Workers = 2
	cfg.Catalog = catalog
	s := New(cfg)

	tickUntil(t, s, 0, 0, func() bool { return s.ResidentCount() == 9 })
	// Settle any result still in the channel.
	s.Tick(context.Background(), 0, 0)
	s.Tick(context.Background(), 0, 0)

	require.Equal(t, 9, catalog.calls(world.BiomeForest),
		"pending guard keeps each cell to a single build")
}

func TestAsync_StaleBuildsAreDiscarded(t *testing.T) {
	cfg := testConfig()
	cfg.InitialRadius = 1
	cfg.MaxRadius = 1
	cfg.Workers = 4
	s := New(cfg)

	// Kick off builds around the origin, then leave before they publish.
	s.Tick(context.Background(), 0, 0)
	far := float64(20 * cfg.ZoneSize)
	tickUntil(t, s, far, far, func() bool { return s.ResidentCount() == 9 })

	for _, c := range s.ActiveSet() {
		require.GreaterOrEqual(t, c.X, 19, "origin-window build must not publish")
		require.GreaterOrEqual(t, c.Y, 19)
	}
}

func TestAsync_FailuresSurfaceInMetrics(t *testing.T) {
	catalog := newFakeCatalog(forestTemplate("glade", world.ZoneStart))
	metrics := newFakeMetrics()
	cfg := testConfig()
	cfg.InitialRadius = 1
	cfg.MaxRadius = 1
	cfg.Workers = 4
	cfg.Catalog = catalog
	cfg.Metrics = metrics
	s := New(cfg)

	// Only the start cell can build; the ring has no early_game bucket.
	tickUntil(t, s, 0, 0, func() bool {
		metrics.mu.Lock()
		defer metrics.mu.Unlock()
		return metrics.failures["template_not_found"] >= 8 && s.ResidentCount() == 1
	})

	require.True(t, s.Resident(world.ZoneCoord{X: 0, Y: 0}))
}
