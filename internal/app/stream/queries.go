package stream

import (
	"sort"

	"go.uber.org/zap"

	"driftworld/internal/domain/world"
)

// enemyQueryRadius bounds EnemySpawns to two zone lengths per axis around the
// focal point.
const enemyQueryRadius = 2

// ZoneAt returns the resident zone containing a world position.
func (s *Streamer) ZoneAt(worldX, worldY float64) (*world.Zone, bool) {
	coord := world.CoordAt(worldX, worldY, s.cfg.ZoneSize)
	z, ok := s.zones[coord]
	return z, ok
}

// EnemySpawns projects the enemy descriptors of nearby resident zones into
// world space. Gameplay systems consume these to realize live enemies.
func (s *Streamer) EnemySpawns(focalX, focalY float64) []EnemySpawn {
	limit := float64(enemyQueryRadius * s.cfg.ZoneSize)
	var out []EnemySpawn
	for _, zone := range s.sortedZones() {
		for _, e := range zone.Template.Enemies {
			pos := zone.TileWorldPos(e.X, e.Y)
			if absFloat(pos.X-focalX) > limit || absFloat(pos.Y-focalY) > limit {
				continue
			}
			spawn := EnemySpawn{
				Kind:   e.Kind,
				X:      pos.X,
				Y:      pos.Y,
				Health: e.Health,
				Biome:  zone.Template.Biome,
				ZoneID: zone.ID,
			}
			for _, p := range e.Patrol {
				spawn.Patrol = append(spawn.Patrol, zone.TileWorldPos(p.X, p.Y))
			}
			out = append(out, spawn)
		}
	}
	return out
}

// LootSpawns lists loot descriptors within radius zone lengths of the focal
// point.
func (s *Streamer) LootSpawns(focalX, focalY float64, radius int) []LootSpawn {
	limit := float64(radius * s.cfg.ZoneSize)
	var out []LootSpawn
	for _, zone := range s.sortedZones() {
		for _, l := range zone.Template.Loot {
			pos := zone.TileWorldPos(l.X, l.Y)
			if absFloat(pos.X-focalX) > limit || absFloat(pos.Y-focalY) > limit {
				continue
			}
			out = append(out, LootSpawn{
				Kind:   l.Kind,
				Rarity: l.Rarity,
				X:      pos.X,
				Y:      pos.Y,
				ZoneID: zone.ID,
			})
		}
	}
	return out
}

// TransitionAt resolves the owning zone and returns the transition occupying
// the tile under the world position, if any.
func (s *Streamer) TransitionAt(worldX, worldY float64) (world.Transition, bool) {
	zone, ok := s.ZoneAt(worldX, worldY)
	if !ok {
		return world.Transition{}, false
	}
	tx, ty, ok := zone.LocalTile(worldX, worldY)
	if !ok {
		return world.Transition{}, false
	}
	return zone.Template.TransitionAt(tx, ty)
}

// HandleTransition teleports an entity standing on a transition tile to the
// target zone's first spawn position, provided the target template is
// currently resident. A non-resident target is a no-op this tick; the caller
// may retry once streaming catches up.
func (s *Streamer) HandleTransition(worldX, worldY float64) (world.Position, bool) {
	tr, ok := s.TransitionAt(worldX, worldY)
	if !ok {
		return world.Position{}, false
	}
	for _, zone := range s.sortedZones() {
		if zone.Template.Name != tr.Target {
			continue
		}
		if pos, ok := zone.FirstSpawnWorld(); ok {
			return pos, true
		}
	}
	s.log.Debug("transition target not resident, ignoring",
		zap.String("target", tr.Target))
	return world.Position{}, false
}

// SpawnPosition picks a respawn point: a zone flagged spawn_zone wins, then
// the start zone, then nothing.
func (s *Streamer) SpawnPosition() (world.Position, bool) {
	var startFallback *world.Zone
	for _, zone := range s.sortedZones() {
		if zone.Template.SpawnZone {
			if pos, ok := zone.FirstSpawnWorld(); ok {
				return pos, true
			}
		}
		if startFallback == nil && zone.Template.ZoneType == world.ZoneStart {
			startFallback = zone
		}
	}
	if startFallback != nil {
		return startFallback.FirstSpawnWorld()
	}
	return world.Position{}, false
}

// Platforms collects world-space platform rectangles of every resident zone,
// for the host's collision pass.
func (s *Streamer) Platforms() []world.Rect {
	var out []world.Rect
	for _, zone := range s.sortedZones() {
		out = append(out, zone.PlatformRects()...)
	}
	return out
}

// ActiveSet returns the resident coordinates, sorted row-major.
func (s *Streamer) ActiveSet() []world.ZoneCoord {
	out := make([]world.ZoneCoord, 0, len(s.zones))
	for c := range s.zones {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Resident reports whether a coordinate currently has a live zone.
func (s *Streamer) Resident(coord world.ZoneCoord) bool {
	_, ok := s.zones[coord]
	return ok
}

func (s *Streamer) ResidentCount() int { return len(s.zones) }

func (s *Streamer) Radius() int { return s.radius }

func (s *Streamer) Seed() int64 { return s.cfg.Seed }

func (s *Streamer) ZoneSize() int { return s.cfg.ZoneSize }

// sortedZones iterates the table in coordinate order so query output is
// stable across runs.
func (s *Streamer) sortedZones() []*world.Zone {
	coords := s.ActiveSet()
	out := make([]*world.Zone, 0, len(coords))
	for _, c := range coords {
		out = append(out, s.zones[c])
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
