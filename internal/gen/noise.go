// Package gen holds the deterministic generation primitives: the seeded noise
// field and the biome classifier built on top of it.
package gen

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3

	// fallbackValue is returned whenever the sampler misbehaves. Generation
	// degrades to the first threshold bucket instead of halting.
	fallbackValue = 0.0
)

// Field is a deterministic continuous noise sampler. The same seed always
// yields the same surface, across calls and across processes.
type Field struct {
	seed int64
	p    *perlin.Perlin
}

func NewField(seed int64) *Field {
	return &Field{seed: seed, p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)}
}

func (f *Field) Seed() int64 { return f.seed }

// Sample returns noise at (x·scale, y·scale), clamped to [-1,1]. It never
// panics; internal faults yield the fixed fallback value.
func (f *Field) Sample(x, y, scale float64) (v float64) {
	defer func() {
		if recover() != nil {
			v = fallbackValue
		}
	}()
	v = f.p.Noise2D(x*scale, y*scale)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallbackValue
	}
	return clamp(v, -1, 1)
}

// Sample1D is the one-dimensional counterpart, for strip-shaped consumers.
func (f *Field) Sample1D(x, scale float64) (v float64) {
	defer func() {
		if recover() != nil {
			v = fallbackValue
		}
	}()
	v = f.p.Noise1D(x * scale)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallbackValue
	}
	return clamp(v, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
