package world

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTemplate = errors.New("invalid zone template")
	ErrInvalidZone     = errors.New("invalid zone")
)

// Validate checks the structural invariants every template must satisfy before
// it may enter the catalog: positive dimensions, a recognized biome, and every
// positional entry inside [0,width)x[0,height). The builder runs the same
// check again before instantiating a zone.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTemplate)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: template %q: non-positive size %dx%d", ErrInvalidTemplate, t.Name, t.Width, t.Height)
	}
	if !t.Biome.Known() {
		return fmt.Errorf("%w: template %q: unknown biome %q", ErrInvalidTemplate, t.Name, t.Biome)
	}
	for i, tile := range t.Tiles {
		if !t.inBounds(tile.X, tile.Y) {
			return fmt.Errorf("%w: template %q: tile[%d] %q at (%d,%d) outside %dx%d", ErrInvalidTemplate, t.Name, i, tile.Kind, tile.X, tile.Y, t.Width, t.Height)
		}
	}
	for i, dec := range t.Decorations {
		if !t.inBounds(dec.X, dec.Y) {
			return fmt.Errorf("%w: template %q: decoration[%d] %q at (%d,%d) outside %dx%d", ErrInvalidTemplate, t.Name, i, dec.Kind, dec.X, dec.Y, t.Width, t.Height)
		}
	}
	for i, enemy := range t.Enemies {
		if !t.inBounds(enemy.X, enemy.Y) {
			return fmt.Errorf("%w: template %q: enemy[%d] %q at (%d,%d) outside %dx%d", ErrInvalidTemplate, t.Name, i, enemy.Kind, enemy.X, enemy.Y, t.Width, t.Height)
		}
	}
	for i, loot := range t.Loot {
		if !t.inBounds(loot.X, loot.Y) {
			return fmt.Errorf("%w: template %q: loot[%d] %q at (%d,%d) outside %dx%d", ErrInvalidTemplate, t.Name, i, loot.Kind, loot.X, loot.Y, t.Width, t.Height)
		}
	}
	for i, tr := range t.Transitions {
		if !t.inBounds(tr.X, tr.Y) {
			return fmt.Errorf("%w: template %q: transition[%d] %q at (%d,%d) outside %dx%d", ErrInvalidTemplate, t.Name, i, tr.Kind, tr.X, tr.Y, t.Width, t.Height)
		}
	}
	return nil
}

func (t *Template) inBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// Validate checks a built zone before it enters the active table.
func (z *Zone) Validate() error {
	if z == nil {
		return fmt.Errorf("%w: nil zone", ErrInvalidZone)
	}
	if z.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidZone)
	}
	if z.ID != z.Coord.ZoneID() {
		return fmt.Errorf("%w: id %q does not match coordinate %v", ErrInvalidZone, z.ID, z.Coord)
	}
	if z.Template == nil {
		return fmt.Errorf("%w: zone %q has no template", ErrInvalidZone, z.ID)
	}
	return nil
}
