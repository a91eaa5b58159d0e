package gen

import (
	"math"

	"driftworld/internal/domain/world"
)

// DefaultBiomeScale spreads neighbouring cells across the noise surface so
// biomes form multi-zone regions rather than per-cell speckle.
const DefaultBiomeScale = 0.1

// Sampler is the noise surface the classifier reads. *Field satisfies it.
type Sampler interface {
	Sample(x, y, scale float64) float64
}

// BiomeThreshold maps every noise value below Max to Biome. Thresholds are
// ordered ascending; the final entry uses +Inf as its bound.
type BiomeThreshold struct {
	Max   float64
	Biome world.Biome
}

// DefaultThresholds carves the noise range into the four stock biomes.
func DefaultThresholds() []BiomeThreshold {
	return []BiomeThreshold{
		{Max: 0.25, Biome: world.BiomeForest},
		{Max: 0.5, Biome: world.BiomeTech},
		{Max: 0.75, Biome: world.BiomeLava},
		{Max: math.Inf(1), Biome: world.BiomeIce},
	}
}

// Classifier assigns a biome to every grid cell. It is a pure function of
// (cell, seed, thresholds): re-classifying an evicted coordinate reproduces
// the same biome with no dependence on zone lifetime.
type Classifier struct {
	sampler    Sampler
	scale      float64
	thresholds []BiomeThreshold
}

// NewClassifier builds a classifier over the given sampler. A nil or empty
// thresholds slice selects DefaultThresholds; a zero scale selects
// DefaultBiomeScale.
func NewClassifier(sampler Sampler, scale float64, thresholds []BiomeThreshold) *Classifier {
	if scale == 0 {
		scale = DefaultBiomeScale
	}
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds()
	}
	return &Classifier{sampler: sampler, scale: scale, thresholds: thresholds}
}

func (c *Classifier) Classify(cell world.ZoneCoord) world.Biome {
	v := c.sampler.Sample(float64(cell.X), float64(cell.Y), c.scale)
	for _, t := range c.thresholds {
		if v < t.Max {
			return t.Biome
		}
	}
	return c.thresholds[len(c.thresholds)-1].Biome
}
