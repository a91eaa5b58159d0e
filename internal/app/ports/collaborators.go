package ports

import "driftworld/internal/domain/world"

// EntityID is an opaque handle issued by the entity system.
type EntityID string

// EntitySystem is the narrow creation/registration surface of the gameplay
// entity runtime. The streaming engine only ever creates entities and attaches
// components; lifetime and iteration belong to the host.
type EntitySystem interface {
	CreateEntity(kind world.EntityKind) (EntityID, error)
	AddComponent(id EntityID, c world.Component) error
}

// ImageHandle references a loaded asset without exposing decoding.
type ImageHandle struct {
	Key  string
	Path string
}

// AssetSystem resolves image keys. A nil result means the asset is missing;
// callers degrade instead of failing.
type AssetSystem interface {
	GetImage(key string) *ImageHandle
}

// ParticleSystem receives ambient emission requests. Implementations must not
// block the tick.
type ParticleSystem interface {
	Emit(kind string, x, y float64, count int)
}
