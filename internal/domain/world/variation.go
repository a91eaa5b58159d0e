package world

import "math/rand"

// Variation chances, applied per entry in list order.
const (
	tileVariantChance   = 0.3
	decorationChance    = 0.2
	patrolChance        = 0.4
	lootRerollChance    = 0.3
	patrolPointsMin     = 2
	patrolPointsMax     = 4
	patrolSpreadX       = 3
	patrolSpreadY       = 2
	decorationSparkOdds = 0.2
)

var tileVariants = map[string][]string{
	"platform_middle": {"normal", "damaged", "reinforced"},
	"platform_glow":   {"blue", "green", "red"},
	"tech_tower":      {"active", "inactive", "overloaded"},
}

var lootByRarity = map[Rarity][]string{
	RarityCommon:    {"health_small", "ammo_small", "scrap"},
	RarityUncommon:  {"health_medium", "ammo_medium", "component"},
	RarityRare:      {"health_large", "ammo_large", "artifact"},
	RarityLegendary: {"powerup", "key", "special"},
}

// WithVariation derives a varied copy of the template from the given seed.
// The receiver is never mutated. Identical seeds produce identical copies:
// the draw sequence is fixed (tiles, decorations, enemies, loot, in list
// order), so the result is safe to rebuild after eviction.
func (t *Template) WithVariation(seed int64) *Template {
	r := rand.New(rand.NewSource(seed))
	out := t.Clone()

	for i := range out.Tiles {
		if r.Float64() < tileVariantChance {
			out.Tiles[i].Variant = randomTileVariant(r, out.Tiles[i].Kind)
		}
	}
	for i := range out.Decorations {
		if r.Float64() < decorationChance {
			out.Decorations[i].Variant = randomDecorationVariant(r, out.Decorations[i].Kind)
		}
	}
	for i := range out.Enemies {
		if r.Float64() < patrolChance {
			out.Enemies[i].Patrol = randomPatrol(r, out.Enemies[i].X, out.Enemies[i].Y)
		}
	}
	for i := range out.Loot {
		if r.Float64() < lootRerollChance {
			out.Loot[i].Kind = randomLootKind(r, out.Loot[i].Rarity)
		}
	}
	return out
}

func randomTileVariant(r *rand.Rand, kind string) string {
	variants, ok := tileVariants[kind]
	if !ok {
		return "normal"
	}
	return variants[r.Intn(len(variants))]
}

func randomDecorationVariant(r *rand.Rand, kind string) *DecorationVariant {
	switch kind {
	case "glow_node":
		return &DecorationVariant{
			Intensity: 0.5 + r.Float64()*0.5,
			Color:     []string{"blue", "green", "red"}[r.Intn(3)],
		}
	case "cable_bundle":
		return &DecorationVariant{
			Damage: r.Float64() * 0.3,
			Sparks: r.Float64() < decorationSparkOdds,
		}
	default:
		return nil
	}
}

// randomPatrol lays out a short loop of waypoints around the spawn tile.
// Waypoints are not clamped to the template grid; enemies may wander slightly
// past the zone edge.
func randomPatrol(r *rand.Rand, x, y int) []PatrolPoint {
	n := patrolPointsMin + r.Intn(patrolPointsMax-patrolPointsMin+1)
	points := make([]PatrolPoint, 0, n)
	for i := 0; i < n; i++ {
		dx := r.Intn(2*patrolSpreadX+1) - patrolSpreadX
		dy := r.Intn(2*patrolSpreadY+1) - patrolSpreadY
		points = append(points, PatrolPoint{X: x + dx, Y: y + dy})
	}
	return points
}

func randomLootKind(r *rand.Rand, rarity Rarity) string {
	kinds, ok := lootByRarity[rarity]
	if !ok {
		return "scrap"
	}
	return kinds[r.Intn(len(kinds))]
}
