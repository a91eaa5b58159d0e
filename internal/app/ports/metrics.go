package ports

import "driftworld/internal/domain/world"

// StreamMetrics counts streaming outcomes for the ops surface.
type StreamMetrics interface {
	RecordBuild(biome world.Biome)
	RecordEviction()
	RecordRestore()
	RecordFailure(kind string)
}
