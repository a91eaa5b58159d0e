package ports

import (
	"context"

	"driftworld/internal/domain/world"
)

// ZoneStateStore persists evicted zone state across sessions.
//
// Load runs once at startup; a failing or absent backing source yields an
// empty map, never an aborted boot. Save is called per eviction and again for
// every resident zone at shutdown; a failing Save is logged by the caller and
// the in-memory copy kept.
type ZoneStateStore interface {
	Load(ctx context.Context) (map[string]world.ZoneState, error)
	Save(ctx context.Context, zoneID string, state world.ZoneState) error
}
