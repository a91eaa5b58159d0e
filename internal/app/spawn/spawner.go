// Package spawn realizes the spawn descriptors of a freshly loaded zone as
// live entities. It is the gameplay-side collaborator of the streaming engine:
// the streamer announces zones, the spawner populates them.
package spawn

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

// ErrSpawnIncomplete reports that some descriptors could not be realized.
// Entities that did spawn stay alive; the zone plays on with gaps.
var ErrSpawnIncomplete = errors.New("zone spawn incomplete")

const (
	enemyColliderSize = 32
	lootColliderSize  = 16
)

type UseCase struct {
	Entities ports.EntitySystem
	Log      *zap.Logger
}

func New(entities ports.EntitySystem, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{Entities: entities, Log: log}
}

// Realize creates one entity per enemy, loot, and decoration descriptor of the
// zone's template, positioned in world space. A descriptor that fails is
// skipped; the ids of everything that did spawn are returned alongside an
// ErrSpawnIncomplete describing how much is missing.
func (u *UseCase) Realize(zone *world.Zone) ([]ports.EntityID, error) {
	if zone == nil || zone.Template == nil {
		return nil, fmt.Errorf("%w: no zone", ErrSpawnIncomplete)
	}

	var ids []ports.EntityID
	failed := 0

	for _, e := range zone.Template.Enemies {
		pos := zone.TileWorldPos(e.X, e.Y)
		patrol := make([]world.Position, 0, len(e.Patrol))
		for _, p := range e.Patrol {
			patrol = append(patrol, zone.TileWorldPos(p.X, p.Y))
		}
		id, err := u.create(world.EntityEnemy,
			world.Transform{X: pos.X, Y: pos.Y},
			world.EnemyTag{Kind: e.Kind, Patrol: patrol},
			world.Health{HP: e.Health},
			world.Collider{W: enemyColliderSize, H: enemyColliderSize},
		)
		if err != nil {
			u.Log.Warn("enemy spawn failed",
				zap.String("zone", zone.ID),
				zap.String("kind", e.Kind),
				zap.Error(err))
			failed++
			continue
		}
		ids = append(ids, id)
	}

	for _, l := range zone.Template.Loot {
		pos := zone.TileWorldPos(l.X, l.Y)
		id, err := u.create(world.EntityLoot,
			world.Transform{X: pos.X, Y: pos.Y},
			world.LootTag{Kind: l.Kind, Rarity: l.Rarity},
			world.Collider{W: lootColliderSize, H: lootColliderSize},
		)
		if err != nil {
			u.Log.Warn("loot spawn failed",
				zap.String("zone", zone.ID),
				zap.String("kind", l.Kind),
				zap.Error(err))
			failed++
			continue
		}
		ids = append(ids, id)
	}

	for _, d := range zone.Template.Decorations {
		pos := zone.TileWorldPos(d.X, d.Y)
		id, err := u.create(world.EntityDecoration,
			world.Transform{X: pos.X, Y: pos.Y},
			world.DecorationTag{Kind: d.Kind, Variant: d.Variant},
		)
		if err != nil {
			u.Log.Warn("decoration spawn failed",
				zap.String("zone", zone.ID),
				zap.String("kind", d.Kind),
				zap.Error(err))
			failed++
			continue
		}
		ids = append(ids, id)
	}

	if failed > 0 {
		return ids, fmt.Errorf("%w: %d descriptor(s) skipped in %s", ErrSpawnIncomplete, failed, zone.ID)
	}
	return ids, nil
}

func (u *UseCase) create(kind world.EntityKind, components ...world.Component) (ports.EntityID, error) {
	id, err := u.Entities.CreateEntity(kind)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	for _, c := range components {
		if err := u.Entities.AddComponent(id, c); err != nil {
			return "", fmt.Errorf("attach %s to %s: %w", c.ComponentKind(), kind, err)
		}
	}
	return id, nil
}

// ZoneLoaded realizes the zone and records the spawned ids on it, so they ride
// the zone's persistence snapshot.
func (u *UseCase) ZoneLoaded(zone *world.Zone) {
	ids, err := u.Realize(zone)
	if err != nil {
		u.Log.Warn("zone populated partially", zap.String("zone", zone.ID), zap.Error(err))
	}
	for _, id := range ids {
		zone.Entities = append(zone.Entities, string(id))
	}
}

// ZoneEvicted is informational: entity lifetime belongs to the host, which
// watches the same event stream.
func (u *UseCase) ZoneEvicted(coord world.ZoneCoord, zoneID string) {
	u.Log.Debug("zone despawn delegated to host",
		zap.String("zone", zoneID),
		zap.Int("zx", coord.X),
		zap.Int("zy", coord.Y))
}

var _ ports.ZoneObserver = (*UseCase)(nil)
