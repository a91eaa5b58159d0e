package ports

import (
	"math/rand"

	"driftworld/internal/domain/world"
)

// TemplateCatalog indexes validated zone blueprints by (biome, zone type) and
// by name. Implementations are read-only between Reload calls and safe for
// concurrent readers; templates they hand out are shared and must not be
// mutated (derive copies via WithVariation).
type TemplateCatalog interface {
	// Random picks one template from the (biome, zoneType) bucket using the
	// caller's rand stream, or ErrTemplateNotFound when the bucket is empty.
	Random(biome world.Biome, zoneType world.ZoneType, r *rand.Rand) (*world.Template, error)
	ByName(name string) (*world.Template, bool)
	// Reload clears and re-reads the backing source. Zones built from prior
	// template instances keep their own references and stay valid.
	Reload() error
	Len() int
}
