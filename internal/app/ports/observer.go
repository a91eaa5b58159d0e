package ports

import "driftworld/internal/domain/world"

// ZoneObserver is notified by the streamer after a zone enters or leaves the
// active table. Callbacks run on the tick goroutine and must return quickly.
type ZoneObserver interface {
	ZoneLoaded(z *world.Zone)
	ZoneEvicted(coord world.ZoneCoord, zoneID string)
}
