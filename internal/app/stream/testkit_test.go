package stream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
	"driftworld/internal/gen"
)

// forestOnly forces every cell into the forest bucket so tests control which
// catalog buckets matter without depending on noise values.
func forestOnly() []gen.BiomeThreshold {
	return []gen.BiomeThreshold{{Max: math.Inf(1), Biome: world.BiomeForest}}
}

func forestTemplate(name string, zoneType world.ZoneType) *world.Template {
	return &world.Template{
		Name:     name,
		Biome:    world.BiomeForest,
		ZoneType: zoneType,
		Width:    10,
		Height:   8,
		Tiles: []world.Tile{
			{Kind: "platform_left", X: 3, Y: 5, Platform: true},
			{Kind: "platform_middle", X: 4, Y: 5, Platform: true},
			{Kind: "platform_right", X: 5, Y: 5, Platform: true},
		},
	}
}

type bucketKey struct {
	biome    world.Biome
	zoneType world.ZoneType
}

// fakeCatalog is a mutable in-memory catalog. Buckets can be added between
// ticks to simulate authoring fixes landing at runtime.
type fakeCatalog struct {
	mu          sync.Mutex
	buckets     map[bucketKey][]*world.Template
	randomCalls map[world.Biome]int
}

func newFakeCatalog(templates ...*world.Template) *fakeCatalog {
	c := &fakeCatalog{
		buckets:     map[bucketKey][]*world.Template{},
		randomCalls: map[world.Biome]int{},
	}
	for _, t := range templates {
		c.add(t)
	}
	return c
}

func (c *fakeCatalog) add(t *world.Template) {
	key := bucketKey{biome: t.Biome, zoneType: t.ZoneType}
	c.buckets[key] = append(c.buckets[key], t)
}

func (c *fakeCatalog) Add(t *world.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(t)
}

func (c *fakeCatalog) Random(biome world.Biome, zoneType world.ZoneType, r *rand.Rand) (*world.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.randomCalls[biome]++
	bucket := c.buckets[bucketKey{biome: biome, zoneType: zoneType}]
	if len(bucket) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ports.ErrTemplateNotFound, biome, zoneType)
	}
	return bucket[r.Intn(len(bucket))], nil
}

func (c *fakeCatalog) ByName(name string) (*world.Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, bucket := range c.buckets {
		for _, t := range bucket {
			if t.Name == name {
				return t, true
			}
		}
	}
	return nil, false
}

func (c *fakeCatalog) Reload() error { return nil }

func (c *fakeCatalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}

// fakeEntities records every created entity and its components.
type fakeEntities struct {
	mu         sync.Mutex
	nextID     int
	created    []world.EntityKind
	components map[ports.EntityID][]world.Component
	failCreate bool
	failAdd    bool
}

func newFakeEntities() *fakeEntities {
	return &fakeEntities{components: map[ports.EntityID][]world.Component{}}
}

func (f *fakeEntities) CreateEntity(kind world.EntityKind) (ports.EntityID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return "", errors.New("entity system down")
	}
	f.nextID++
	id := ports.EntityID(fmt.Sprintf("ent-%d", f.nextID))
	f.created = append(f.created, kind)
	f.components[id] = nil
	return id, nil
}

func (f *fakeEntities) AddComponent(id ports.EntityID, c world.Component) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd {
		return errors.New("component rejected")
	}
	f.components[id] = append(f.components[id], c)
	return nil
}

func (f *fakeEntities) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// fakeStore is an in-memory state store with switchable failures.
type fakeStore struct {
	mu       sync.Mutex
	data     map[string]world.ZoneState
	loadErr  error
	saveErr  error
	saveLog  []string
	loadOnce int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]world.ZoneState{}}
}

func (f *fakeStore) Load(context.Context) (map[string]world.ZoneState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadOnce++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make(map[string]world.ZoneState, len(f.data))
	for k, v := range f.data {
		out[k] = v.Clone()
	}
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, zoneID string, st world.ZoneState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveLog = append(f.saveLog, zoneID)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[zoneID] = st.Clone()
	return nil
}

type fakeParticles struct {
	mu    sync.Mutex
	emits []string
}

func (f *fakeParticles) Emit(kind string, _, _ float64, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < count; i++ {
		f.emits = append(f.emits, kind)
	}
}

type fakeMetrics struct {
	mu       sync.Mutex
	builds   int
	evicts   int
	restores int
	failures map[string]int
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{failures: map[string]int{}} }

func (f *fakeMetrics) RecordBuild(world.Biome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds++
}

func (f *fakeMetrics) RecordEviction() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evicts++
}

func (f *fakeMetrics) RecordRestore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restores++
}

func (f *fakeMetrics) RecordFailure(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[kind]++
}

type fakeObserver struct {
	mu      sync.Mutex
	loaded  []string
	evicted []string
}

func (f *fakeObserver) ZoneLoaded(z *world.Zone) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, z.ID)
}

func (f *fakeObserver) ZoneEvicted(_ world.ZoneCoord, zoneID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evicted = append(f.evicted, zoneID)
}

var (
	_ ports.TemplateCatalog = (*fakeCatalog)(nil)
	_ ports.EntitySystem    = (*fakeEntities)(nil)
	_ ports.ZoneStateStore  = (*fakeStore)(nil)
	_ ports.ParticleSystem  = (*fakeParticles)(nil)
	_ ports.StreamMetrics   = (*fakeMetrics)(nil)
	_ ports.ZoneObserver    = (*fakeObserver)(nil)
)

// fullForestCatalog covers every zone type the window can reach.
func fullForestCatalog() *fakeCatalog {
	return newFakeCatalog(
		forestTemplate("glade", world.ZoneStart),
		forestTemplate("thicket", world.ZoneEarlyGame),
		forestTemplate("deepwood", world.ZoneBoss),
	)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Thresholds = forestOnly()
	cfg.Catalog = fullForestCatalog()
	cfg.Entities = newFakeEntities()
	cfg.Store = newFakeStore()
	cfg.Metrics = newFakeMetrics()
	return cfg
}
