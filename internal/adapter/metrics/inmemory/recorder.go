package inmemory

import (
	"sync"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type Snapshot struct {
	BuildTotal    uint64            `json:"build_total"`
	Evictions     uint64            `json:"evictions"`
	Restores      uint64            `json:"restores"`
	FailureTotal  uint64            `json:"failure_total"`
	BuildsByBiome map[string]uint64 `json:"builds_by_biome"`
	ByFailureKind map[string]uint64 `json:"by_failure_kind"`
}

type Recorder struct {
	mu        sync.Mutex
	builds    uint64
	evictions uint64
	restores  uint64
	byBiome   map[string]uint64
	byFailure map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byBiome:   map[string]uint64{},
		byFailure: map[string]uint64{},
	}
}

func (r *Recorder) RecordBuild(biome world.Biome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
	r.byBiome[string(biome)]++
}

func (r *Recorder) RecordEviction() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictions++
}

func (r *Recorder) RecordRestore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restores++
}

func (r *Recorder) RecordFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFailure[kind]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		BuildTotal:    r.builds,
		Evictions:     r.evictions,
		Restores:      r.restores,
		BuildsByBiome: make(map[string]uint64, len(r.byBiome)),
		ByFailureKind: make(map[string]uint64, len(r.byFailure)),
	}
	for k, v := range r.byBiome {
		out.BuildsByBiome[k] = v
	}
	for k, v := range r.byFailure {
		out.ByFailureKind[k] = v
		out.FailureTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

var _ ports.StreamMetrics = (*Recorder)(nil)
