package world

// Tile is one cell of a template's layout. X and Y are tile coordinates inside
// the template grid, not world units.
type Tile struct {
	Kind     string `json:"type" yaml:"type"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Platform bool   `json:"is_platform" yaml:"is_platform"`
	Variant  string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// DecorationVariant carries the randomized cosmetic properties a decoration
// can receive during variation. Which fields apply depends on the kind.
type DecorationVariant struct {
	Intensity float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	Damage    float64 `json:"damage,omitempty" yaml:"damage,omitempty"`
	Sparks    bool    `json:"sparks,omitempty" yaml:"sparks,omitempty"`
}

type Decoration struct {
	Kind    string             `json:"type" yaml:"type"`
	X       int                `json:"x" yaml:"x"`
	Y       int                `json:"y" yaml:"y"`
	Variant *DecorationVariant `json:"variant,omitempty" yaml:"variant,omitempty"`
}

type PatrolPoint struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

type EnemyEntry struct {
	Kind   string        `json:"type" yaml:"type"`
	X      int           `json:"x" yaml:"x"`
	Y      int           `json:"y" yaml:"y"`
	Health int           `json:"health,omitempty" yaml:"health,omitempty"`
	Patrol []PatrolPoint `json:"patrol_points,omitempty" yaml:"patrol_points,omitempty"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type LootEntry struct {
	Kind   string `json:"type" yaml:"type"`
	Rarity Rarity `json:"rarity" yaml:"rarity"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
}

// Transition marks a tile that carries the player to another template's zone.
type Transition struct {
	Kind   string `json:"type" yaml:"type"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Target string `json:"target" yaml:"target"`
}

// Template is an immutable zone blueprint. Instances handed out by the catalog
// are shared; consumers must treat them as read-only and derive copies through
// WithVariation.
type Template struct {
	Name           string       `json:"name" yaml:"name"`
	Biome          Biome        `json:"biome" yaml:"biome"`
	ZoneType       ZoneType     `json:"zone_type" yaml:"zone_type"`
	Width          int          `json:"width" yaml:"width"`
	Height         int          `json:"height" yaml:"height"`
	Tiles          []Tile       `json:"tiles" yaml:"tiles"`
	Decorations    []Decoration `json:"decorations,omitempty" yaml:"decorations,omitempty"`
	Enemies        []EnemyEntry `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Loot           []LootEntry  `json:"loot,omitempty" yaml:"loot,omitempty"`
	Transitions    []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Events         []string     `json:"events,omitempty" yaml:"events,omitempty"`
	SpawnZone      bool         `json:"spawn_zone,omitempty" yaml:"spawn_zone,omitempty"`
	TransitionType string       `json:"transition_type,omitempty" yaml:"transition_type,omitempty"`
}

// spawnableTileKinds are the platform kinds a player may stand up from.
var spawnableTileKinds = map[string]bool{
	"platform_middle": true,
	"platform_glow":   true,
}

var platformTileKinds = map[string]bool{
	"platform_left":    true,
	"platform_middle":  true,
	"platform_right":   true,
	"platform_glow":    true,
	"platform_tech":    true,
	"platform_crystal": true,
}

// IsPlatformKind reports whether a tile kind is solid ground. Loaders use it
// to derive the platform flag when a document omits it.
func IsPlatformKind(kind string) bool { return platformTileKinds[kind] }

// SpawnPositions returns tile positions directly above spawnable platforms.
func (t *Template) SpawnPositions() []PatrolPoint {
	var out []PatrolPoint
	for _, tile := range t.Tiles {
		if spawnableTileKinds[tile.Kind] {
			out = append(out, PatrolPoint{X: tile.X, Y: tile.Y - 1})
		}
	}
	return out
}

// TransitionAt returns the transition occupying the given tile cell, if any.
func (t *Template) TransitionAt(tileX, tileY int) (Transition, bool) {
	for _, tr := range t.Transitions {
		if tr.X == tileX && tr.Y == tileY {
			return tr, true
		}
	}
	return Transition{}, false
}

// Clone deep-copies the template so variation can mutate freely.
func (t *Template) Clone() *Template {
	cp := *t
	cp.Tiles = append([]Tile(nil), t.Tiles...)
	cp.Decorations = make([]Decoration, len(t.Decorations))
	for i, d := range t.Decorations {
		cp.Decorations[i] = d
		if d.Variant != nil {
			v := *d.Variant
			cp.Decorations[i].Variant = &v
		}
	}
	cp.Enemies = make([]EnemyEntry, len(t.Enemies))
	for i, e := range t.Enemies {
		cp.Enemies[i] = e
		cp.Enemies[i].Patrol = append([]PatrolPoint(nil), e.Patrol...)
	}
	cp.Loot = append([]LootEntry(nil), t.Loot...)
	cp.Transitions = append([]Transition(nil), t.Transitions...)
	cp.Events = append([]string(nil), t.Events...)
	return &cp
}
