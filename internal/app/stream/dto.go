package stream

import "driftworld/internal/domain/world"

// TickReport summarizes what one tick changed.
type TickReport struct {
	Focal    world.ZoneCoord `json:"focal"`
	Radius   int             `json:"radius"`
	Built    int             `json:"built"`
	Restored int             `json:"restored"`
	Evicted  int             `json:"evicted"`
	Failed   int             `json:"failed"`
	Resident int             `json:"resident"`
}

// EnemySpawn is an enemy descriptor projected into world space.
type EnemySpawn struct {
	Kind   string           `json:"type"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Health int              `json:"health"`
	Biome  world.Biome      `json:"biome"`
	Patrol []world.Position `json:"patrol_points,omitempty"`
	ZoneID string           `json:"zone_id"`
}

// LootSpawn is a loot descriptor projected into world space.
type LootSpawn struct {
	Kind   string       `json:"type"`
	Rarity world.Rarity `json:"rarity"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	ZoneID string       `json:"zone_id"`
}
