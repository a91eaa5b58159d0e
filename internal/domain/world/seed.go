package world

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// DeriveSeed folds a label into the world seed, yielding an independent
// deterministic seed per subsystem or coordinate. The zero byte separates the
// seed from the label so distinct inputs cannot collide by concatenation.
func DeriveSeed(rootSeed int64, label string) int64 {
	var d xxhash.Digest
	d.Reset()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(rootSeed))
	_, _ = d.Write(buf[:])
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(label)
	v := int64(d.Sum64())
	if v == 0 {
		v = 1
	}
	return v
}

// NewRNG returns a rand stream seeded from DeriveSeed. Callers own the stream;
// it is not safe for concurrent use.
func NewRNG(rootSeed int64, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(rootSeed, label)))
}

// ZoneSeedLabel names the generation stream of a single cell, so template
// selection and variation replay identically after eviction.
func ZoneSeedLabel(c ZoneCoord) string {
	return fmt.Sprintf("zone.%d.%d", c.X, c.Y)
}
