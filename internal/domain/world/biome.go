package world

type Biome string

const (
	BiomeForest Biome = "forest"
	BiomeTech   Biome = "tech"
	BiomeLava   Biome = "lava"
	BiomeIce    Biome = "ice"
)

// KnownBiomes lists every biome the classifier can produce, in threshold order.
func KnownBiomes() []Biome {
	return []Biome{BiomeForest, BiomeTech, BiomeLava, BiomeIce}
}

func (b Biome) Known() bool {
	_, ok := biomeProperties[b]
	return ok
}

func ParseBiome(s string) (Biome, bool) {
	b := Biome(s)
	return b, b.Known()
}

// BackgroundKey is the asset key of the zone's backdrop sprite.
func (b Biome) BackgroundKey() string {
	return "background_" + string(b)
}

// BiomeProperties is the fixed gameplay/visual profile of a biome. Entries are
// data, not behavior; adding a biome means adding a table row.
type BiomeProperties struct {
	TileColor     [3]uint8
	Hazard        string
	EnemyKinds    []string
	ParticleKind  string
	MusicTheme    string
	FogColor      [3]uint8
	FogDensity    float64
	PlatformKinds []string
	// LootWeights maps drop names to relative weights for ambient drops.
	LootWeights map[string]float64
}

func (b Biome) Properties() BiomeProperties {
	return biomeProperties[b]
}

var biomeProperties = map[Biome]BiomeProperties{
	BiomeForest: {
		TileColor:     [3]uint8{34, 139, 34},
		Hazard:        "thorn_bush",
		EnemyKinds:    []string{"forest_drone", "tree_turret"},
		ParticleKind:  "leaves",
		MusicTheme:    "forest",
		FogColor:      [3]uint8{100, 200, 100},
		FogDensity:    0.2,
		PlatformKinds: []string{"normal", "bouncy"},
		LootWeights:   map[string]float64{"healing_herb": 0.4, "nature_weapon": 0.2, "stealth_cloak": 0.1},
	},
	BiomeTech: {
		TileColor:     [3]uint8{70, 130, 180},
		Hazard:        "electric_field",
		EnemyKinds:    []string{"tech_drone", "laser_turret"},
		ParticleKind:  "sparks",
		MusicTheme:    "electronic",
		FogColor:      [3]uint8{100, 100, 255},
		FogDensity:    0.2,
		PlatformKinds: []string{"moving", "grapple_boost"},
		LootWeights:   map[string]float64{"energy_shield": 0.3, "laser_weapon": 0.2, "teleport": 0.1},
	},
	BiomeLava: {
		TileColor:     [3]uint8{139, 0, 0},
		Hazard:        "lava_pool",
		EnemyKinds:    []string{"lava_drone", "flame_turret"},
		ParticleKind:  "embers",
		MusicTheme:    "volcanic",
		FogColor:      [3]uint8{255, 50, 0},
		FogDensity:    0.3,
		PlatformKinds: []string{"damaging", "moving"},
		LootWeights:   map[string]float64{"fire_resistance": 0.4, "damage_boost": 0.3, "explosive_ammo": 0.2},
	},
	BiomeIce: {
		TileColor:     [3]uint8{135, 206, 235},
		Hazard:        "ice_spike",
		EnemyKinds:    []string{"ice_drone", "frost_turret"},
		ParticleKind:  "snowflakes",
		MusicTheme:    "arctic",
		FogColor:      [3]uint8{200, 255, 255},
		FogDensity:    0.1,
		PlatformKinds: []string{"slippery", "breakable"},
		LootWeights:   map[string]float64{"ice_shield": 0.3, "freeze_weapon": 0.2, "speed_boost": 0.1},
	},
}

// ZoneType grades a cell by its distance from the world origin.
type ZoneType string

const (
	ZoneStart     ZoneType = "start"
	ZoneEarlyGame ZoneType = "early_game"
	ZoneBoss      ZoneType = "boss_zone"
)

// ZoneTypeFor returns the zone type for a cell: the origin is the start zone,
// its eight neighbours are early game, everything further out is boss territory.
func ZoneTypeFor(c ZoneCoord) ZoneType {
	if c.X == 0 && c.Y == 0 {
		return ZoneStart
	}
	if absInt(c.X) <= 1 && absInt(c.Y) <= 1 {
		return ZoneEarlyGame
	}
	return ZoneBoss
}
