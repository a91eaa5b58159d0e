package stream

import (
	"fmt"

	"go.uber.org/zap"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

// Builder instantiates templates at grid cells. It is stateless: every call
// produces a Zone value the builder does not retain.
type Builder struct {
	Entities ports.EntitySystem
	Assets   ports.AssetSystem
	ZoneSize int
	Log      *zap.Logger
}

// Build validates the template once more, constructs the Zone at its world
// origin, and registers the zone's single marker entity so ambient systems can
// discover it. A failed marker registration degrades the zone (no marker, no
// error); every other failure wraps ErrZoneBuild.
func (b *Builder) Build(tmpl *world.Template, coord world.ZoneCoord) (*world.Zone, error) {
	log := b.logger()
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrZoneBuild, err)
	}

	zone := world.NewZone(coord, tmpl, b.ZoneSize)
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrZoneBuild, err)
	}

	backgroundKey := tmpl.Biome.BackgroundKey()
	if b.Assets != nil && b.Assets.GetImage(backgroundKey) == nil {
		log.Debug("background asset missing",
			zap.String("zone", zone.ID),
			zap.String("image_key", backgroundKey))
	}

	if id, err := b.registerMarker(zone, backgroundKey); err != nil {
		log.Warn("zone marker registration failed, continuing without marker",
			zap.String("zone", zone.ID),
			zap.Error(err))
	} else {
		zone.Entities = append(zone.Entities, string(id))
	}

	return zone, nil
}

func (b *Builder) registerMarker(zone *world.Zone, backgroundKey string) (ports.EntityID, error) {
	if b.Entities == nil {
		return "", fmt.Errorf("no entity system attached")
	}
	id, err := b.Entities.CreateEntity(world.EntityZone)
	if err != nil {
		return "", fmt.Errorf("create marker: %w", err)
	}
	components := []world.Component{
		world.Transform{X: zone.Origin.X, Y: zone.Origin.Y},
		world.ZoneMeta{Biome: zone.Template.Biome, ZoneType: zone.Template.ZoneType},
		world.Sprite{ImageKey: backgroundKey},
	}
	for _, c := range components {
		if err := b.Entities.AddComponent(id, c); err != nil {
			return "", fmt.Errorf("attach %s: %w", c.ComponentKind(), err)
		}
	}
	return id, nil
}

func (b *Builder) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}
