// Package memparticles buffers ambient emission requests for hosts without a
// renderer attached. The buffer is a fixed ring; old emissions fall off.
package memparticles

import (
	"sync"
	"time"

	"driftworld/internal/app/ports"
)

const defaultCapacity = 512

type Emission struct {
	Kind  string    `json:"kind"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

type Emitter struct {
	mu     sync.Mutex
	ring   []Emission
	next   int
	size   int
	totals map[string]uint64
}

func NewEmitter(capacity int) *Emitter {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Emitter{
		ring:   make([]Emission, capacity),
		totals: make(map[string]uint64),
	}
}

func (e *Emitter) Emit(kind string, x, y float64, count int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ring[e.next] = Emission{Kind: kind, X: x, Y: y, Count: count, At: time.Now()}
	e.next = (e.next + 1) % len(e.ring)
	if e.size < len(e.ring) {
		e.size++
	}
	e.totals[kind] += uint64(count)
}

// Counts returns cumulative emitted particle totals per kind.
func (e *Emitter) Counts() map[string]uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]uint64, len(e.totals))
	for k, v := range e.totals {
		out[k] = v
	}
	return out
}

// Recent returns up to n emissions, newest first.
func (e *Emitter) Recent(n int) []Emission {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n > e.size {
		n = e.size
	}
	out := make([]Emission, 0, n)
	for i := 1; i <= n; i++ {
		idx := (e.next - i + len(e.ring)) % len(e.ring)
		out = append(out, e.ring[idx])
	}
	return out
}

var _ ports.ParticleSystem = (*Emitter)(nil)
