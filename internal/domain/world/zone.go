package world

// Zone is a live region instantiated from a template at a grid cell. Exactly
// one Zone may exist per coordinate; the streamer discards the value at
// eviction after snapshotting its mutable parts.
type Zone struct {
	Coord    ZoneCoord
	ID       string
	Template *Template
	Origin   Position
	Size     int
	Entities []string
	State    map[string]any
}

// NewZone places a template instance at the given cell. Size is the zone edge
// length in world units.
func NewZone(coord ZoneCoord, tmpl *Template, size int) *Zone {
	return &Zone{
		Coord:    coord,
		ID:       coord.ZoneID(),
		Template: tmpl,
		Origin:   coord.Origin(size),
		Size:     size,
		State:    map[string]any{},
	}
}

// ZoneState is the durable part of a zone: the ids of entities it spawned and
// its free-form gameplay state.
type ZoneState struct {
	Entities []string       `json:"entities"`
	State    map[string]any `json:"state"`
}

// Clone returns an independent copy so stored snapshots cannot alias live maps.
func (s ZoneState) Clone() ZoneState {
	out := ZoneState{
		Entities: append([]string(nil), s.Entities...),
		State:    make(map[string]any, len(s.State)),
	}
	for k, v := range s.State {
		out.State[k] = v
	}
	return out
}

// Snapshot captures the zone's durable state for persistence.
func (z *Zone) Snapshot() ZoneState {
	return ZoneState{Entities: z.Entities, State: z.State}.Clone()
}

// Restore merges a persisted snapshot into a freshly built zone. Saved state
// keys win over generated ones; saved entity ids are appended after any the
// build already registered.
func (z *Zone) Restore(saved ZoneState) {
	if z.State == nil {
		z.State = map[string]any{}
	}
	for k, v := range saved.State {
		z.State[k] = v
	}
	z.Entities = append(z.Entities, saved.Entities...)
}

// TilePixelsX is the world width of one template tile inside this zone.
func (z *Zone) TilePixelsX() float64 {
	return float64(z.Size) / float64(z.Template.Width)
}

// TilePixelsY is the world height of one template tile inside this zone.
func (z *Zone) TilePixelsY() float64 {
	return float64(z.Size) / float64(z.Template.Height)
}

// TileWorldPos converts template tile coordinates to world space.
func (z *Zone) TileWorldPos(tileX, tileY int) Position {
	return Position{
		X: z.Origin.X + float64(tileX)*z.TilePixelsX(),
		Y: z.Origin.Y + float64(tileY)*z.TilePixelsY(),
	}
}

// LocalTile converts a world position inside the zone to tile coordinates.
func (z *Zone) LocalTile(worldX, worldY float64) (int, int, bool) {
	if !z.ContainsWorld(worldX, worldY) {
		return 0, 0, false
	}
	tx := int((worldX - z.Origin.X) / z.TilePixelsX())
	ty := int((worldY - z.Origin.Y) / z.TilePixelsY())
	return tx, ty, true
}

// ContainsWorld reports whether a world position falls inside the zone.
func (z *Zone) ContainsWorld(worldX, worldY float64) bool {
	return worldX >= z.Origin.X && worldX < z.Origin.X+float64(z.Size) &&
		worldY >= z.Origin.Y && worldY < z.Origin.Y+float64(z.Size)
}

// FirstSpawnWorld returns the zone's first declared spawn position in world
// space. Transitions and respawn logic both target it.
func (z *Zone) FirstSpawnWorld() (Position, bool) {
	spawns := z.Template.SpawnPositions()
	if len(spawns) == 0 {
		return Position{}, false
	}
	return z.TileWorldPos(spawns[0].X, spawns[0].Y), true
}

// PlatformRects returns world-space rectangles for the zone's platform tiles.
func (z *Zone) PlatformRects() []Rect {
	var out []Rect
	for _, tile := range z.Template.Tiles {
		if !tile.Platform {
			continue
		}
		pos := z.TileWorldPos(tile.X, tile.Y)
		out = append(out, Rect{X: pos.X, Y: pos.Y, W: z.TilePixelsX(), H: z.TilePixelsY()})
	}
	return out
}
