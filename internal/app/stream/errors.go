package stream

import (
	"errors"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

// ErrZoneBuild wraps any failure raised while instantiating a template at a
// coordinate. The tick loop treats it as transient: log, skip, retry next tick.
var ErrZoneBuild = errors.New("zone build failed")

// failureKind buckets a generation error for metrics. The taxonomy mirrors the
// per-step failure modes of the tick loop.
func failureKind(err error) string {
	switch {
	case errors.Is(err, ports.ErrTemplateNotFound):
		return "template_not_found"
	case errors.Is(err, world.ErrInvalidTemplate):
		return "template_invalid"
	case errors.Is(err, world.ErrInvalidZone):
		return "zone_invalid"
	case errors.Is(err, ErrZoneBuild):
		return "build"
	default:
		return "unknown"
	}
}
