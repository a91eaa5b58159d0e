package world

import "math/rand"

type TileCategory string

const (
	CategoryPlatform   TileCategory = "platform"
	CategorySupport    TileCategory = "support"
	CategoryDecoration TileCategory = "decoration"
	CategoryHazard     TileCategory = "hazard"
	CategoryBackground TileCategory = "background"
)

// TileRule describes where a tile kind may sit relative to its neighbours.
// Rules are static data; placement logic reads them, never special-cases kinds.
type TileRule struct {
	Category    TileCategory
	ConnectsTo  map[string]bool
	MustBeUnder map[string]bool
	MustBeAbove map[string]bool
	MinSpacing  int
}

var tileRules = map[string]TileRule{
	"platform_left": {
		Category:    CategoryPlatform,
		ConnectsTo:  set("platform_middle"),
		MustBeUnder: set("support"),
	},
	"platform_middle": {
		Category:    CategoryPlatform,
		ConnectsTo:  set("platform_left", "platform_right", "platform_middle"),
		MustBeUnder: set("support"),
	},
	"platform_right": {
		Category:    CategoryPlatform,
		ConnectsTo:  set("platform_middle"),
		MustBeUnder: set("support"),
	},
	"support": {
		Category:    CategorySupport,
		ConnectsTo:  set("support"),
		MustBeAbove: set("platform_middle", "platform_left", "platform_right"),
	},
	"spikes": {
		Category:   CategoryHazard,
		ConnectsTo: set("platform_middle", "platform_left", "platform_right"),
		MinSpacing: 2,
	},
	"laser": {
		Category:   CategoryHazard,
		ConnectsTo: set("platform_middle", "platform_left", "platform_right"),
		MinSpacing: 3,
	},
	"crystal": {
		Category:   CategoryDecoration,
		ConnectsTo: set("platform_middle", "platform_left", "platform_right"),
		MinSpacing: 2,
	},
	"plant": {
		Category:   CategoryDecoration,
		ConnectsTo: set("platform_middle", "platform_left", "platform_right"),
		MinSpacing: 1,
	},
	"background": {
		Category:   CategoryBackground,
		ConnectsTo: set("background"),
	},
}

// biomeTileVariants skins structural tile kinds per biome.
var biomeTileVariants = map[Biome]map[string][]string{
	BiomeForest: {
		"platform_left":   {"grass_left", "moss_left", "wood_left"},
		"platform_middle": {"grass_middle", "moss_middle", "wood_middle"},
		"platform_right":  {"grass_right", "moss_right", "wood_right"},
		"support":         {"tree", "vine", "root"},
		"decoration":      {"leaf", "flower", "mushroom"},
	},
	BiomeTech: {
		"platform_left":   {"metal_left", "circuit_left", "energy_left"},
		"platform_middle": {"metal_middle", "circuit_middle", "energy_middle"},
		"platform_right":  {"metal_right", "circuit_right", "energy_right"},
		"support":         {"beam", "cable", "strut"},
		"decoration":      {"console", "light", "hologram"},
	},
	BiomeIce: {
		"platform_left":   {"ice_left", "snow_left", "crystal_left"},
		"platform_middle": {"ice_middle", "snow_middle", "crystal_middle"},
		"platform_right":  {"ice_right", "snow_right", "crystal_right"},
		"support":         {"icicle", "frost", "pillar"},
		"decoration":      {"snowflake", "gem", "aurora"},
	},
	BiomeLava: {
		"platform_left":   {"magma_left", "obsidian_left", "ash_left"},
		"platform_middle": {"magma_middle", "obsidian_middle", "ash_middle"},
		"platform_right":  {"magma_right", "obsidian_right", "ash_right"},
		"support":         {"geyser", "vent", "column"},
		"decoration":      {"ember", "crystal", "glow"},
	},
}

// RuleFor looks up the placement rule for a tile kind.
func RuleFor(kind string) (TileRule, bool) {
	r, ok := tileRules[kind]
	return r, ok
}

// TileVariant picks a biome-skinned variant for a structural tile kind, or
// returns the kind unchanged when the biome has no skin for it.
func TileVariant(kind string, biome Biome, r *rand.Rand) string {
	variants, ok := biomeTileVariants[biome][kind]
	if !ok || len(variants) == 0 {
		return kind
	}
	return variants[r.Intn(len(variants))]
}

// ValidTilePlacement reports whether a tile kind tolerates the given
// neighbours. Keys of neighbours are "left", "right", "above", "below"; absent
// directions are unconstrained. ConnectsTo governs lateral adjacency; vertical
// neighbours answer to MustBeUnder and MustBeAbove.
func ValidTilePlacement(kind string, neighbours map[string]string) bool {
	rule, ok := tileRules[kind]
	if !ok {
		return false
	}
	for _, side := range []string{"left", "right"} {
		if neighbourKind, ok := neighbours[side]; ok && !rule.ConnectsTo[neighbourKind] {
			return false
		}
	}
	if len(rule.MustBeUnder) > 0 {
		if below, ok := neighbours["below"]; ok && !rule.MustBeUnder[below] {
			return false
		}
	}
	if len(rule.MustBeAbove) > 0 {
		if above, ok := neighbours["above"]; ok && !rule.MustBeAbove[above] {
			return false
		}
	}
	return true
}

func set(kinds ...string) map[string]bool {
	out := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		out[k] = true
	}
	return out
}
