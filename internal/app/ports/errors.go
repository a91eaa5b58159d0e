package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrTemplateNotFound reports an empty (biome, zone type) catalog bucket.
	// It propagates to the streamer so authoring gaps surface in logs instead
	// of being papered over with a substitute template.
	ErrTemplateNotFound = errors.New("zone template not found")
)
