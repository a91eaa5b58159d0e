package gen

import (
	"testing"

	"driftworld/internal/domain/world"
)

type fixedSampler struct{ v float64 }

func (s fixedSampler) Sample(_, _, _ float64) float64 { return s.v }

var _ Sampler = fixedSampler{}

func TestClassify_ThresholdBuckets(t *testing.T) {
	cases := []struct {
		v    float64
		want world.Biome
	}{
		{-0.9, world.BiomeForest},
		{0.0, world.BiomeForest},
		{0.249, world.BiomeForest},
		{0.25, world.BiomeTech},
		{0.49, world.BiomeTech},
		{0.5, world.BiomeLava},
		{0.74, world.BiomeLava},
		{0.75, world.BiomeIce},
		{1.0, world.BiomeIce},
	}
	for _, tc := range cases {
		c := NewClassifier(fixedSampler{v: tc.v}, 0, nil)
		if got := c.Classify(world.ZoneCoord{}); got != tc.want {
			t.Fatalf("value %v classified as %q want %q", tc.v, got, tc.want)
		}
	}
}

func TestClassify_OriginWithDefaultSeedIsForest(t *testing.T) {
	// Noise is zero at the origin, which lands in the first bucket.
	c := NewClassifier(NewField(42), DefaultBiomeScale, DefaultThresholds())
	if got := c.Classify(world.ZoneCoord{X: 0, Y: 0}); got != world.BiomeForest {
		t.Fatalf("classify(0,0)=%q want forest", got)
	}
}

func TestClassify_StableAcrossInstances(t *testing.T) {
	mk := func() *Classifier {
		return NewClassifier(NewField(42), DefaultBiomeScale, DefaultThresholds())
	}
	a, b := mk(), mk()
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			cell := world.ZoneCoord{X: x, Y: y}
			if a.Classify(cell) != b.Classify(cell) {
				t.Fatalf("classification of %v unstable across instances", cell)
			}
		}
	}
}

func TestClassify_ProducesKnownBiomesOnly(t *testing.T) {
	c := NewClassifier(NewField(99), DefaultBiomeScale, nil)
	for x := -30; x <= 30; x += 3 {
		for y := -30; y <= 30; y += 3 {
			if b := c.Classify(world.ZoneCoord{X: x, Y: y}); !b.Known() {
				t.Fatalf("unknown biome %q at (%d,%d)", b, x, y)
			}
		}
	}
}
