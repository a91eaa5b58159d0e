package world

type EntityKind string

const (
	EntityZone       EntityKind = "zone"
	EntityEnemy      EntityKind = "enemy"
	EntityLoot       EntityKind = "loot"
	EntityDecoration EntityKind = "decoration"
)

type ComponentKind string

const (
	ComponentTransform  ComponentKind = "transform"
	ComponentZoneMeta   ComponentKind = "zone_meta"
	ComponentSprite     ComponentKind = "sprite"
	ComponentEnemy      ComponentKind = "enemy"
	ComponentLoot       ComponentKind = "loot"
	ComponentDecoration ComponentKind = "decoration"
	ComponentCollider   ComponentKind = "collider"
	ComponentHealth     ComponentKind = "health"
)

// Component is the closed set of payloads the streaming engine attaches to
// entities it registers. Only the types below implement it.
type Component interface {
	ComponentKind() ComponentKind
}

type Transform struct {
	X float64
	Y float64
}

func (Transform) ComponentKind() ComponentKind { return ComponentTransform }

// ZoneMeta tags a zone marker entity so ambient systems can discover the
// zone's theme without reaching into the streamer.
type ZoneMeta struct {
	Biome    Biome
	ZoneType ZoneType
}

func (ZoneMeta) ComponentKind() ComponentKind { return ComponentZoneMeta }

type Sprite struct {
	ImageKey string
}

func (Sprite) ComponentKind() ComponentKind { return ComponentSprite }

type EnemyTag struct {
	Kind   string
	Patrol []Position
}

func (EnemyTag) ComponentKind() ComponentKind { return ComponentEnemy }

type LootTag struct {
	Kind   string
	Rarity Rarity
}

func (LootTag) ComponentKind() ComponentKind { return ComponentLoot }

type DecorationTag struct {
	Kind    string
	Variant *DecorationVariant
}

func (DecorationTag) ComponentKind() ComponentKind { return ComponentDecoration }

type Collider struct {
	W float64
	H float64
}

func (Collider) ComponentKind() ComponentKind { return ComponentCollider }

type Health struct {
	HP int
}

func (Health) ComponentKind() ComponentKind { return ComponentHealth }
