package stream

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
	"driftworld/internal/gen"
)

const ambientParticleCount = 5

// Config wires the streamer's collaborators and tuning. Zero fields fall back
// to the defaults from DefaultConfig.
type Config struct {
	Seed          int64
	ZoneSize      int
	InitialRadius int
	MaxRadius     int
	BiomeScale    float64
	Thresholds    []gen.BiomeThreshold

	Catalog   ports.TemplateCatalog
	Entities  ports.EntitySystem
	Assets    ports.AssetSystem
	Particles ports.ParticleSystem
	Store     ports.ZoneStateStore
	Metrics   ports.StreamMetrics
	Observers []ports.ZoneObserver

	// Workers > 0 moves template instantiation onto a bounded worker pool.
	// Zero keeps generation synchronous inside the tick.
	Workers int

	Log *zap.Logger
}

// DefaultConfig mirrors the stock world tuning: seed 42, 320-unit zones, a
// tight first window that widens by one ring per tick.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		ZoneSize:      320,
		InitialRadius: 1,
		MaxRadius:     2,
		BiomeScale:    gen.DefaultBiomeScale,
	}
}

// Streamer owns the zone table and the per-tick load/evict state machine.
// It is not safe for concurrent use: the host drives Tick, queries, and Flush
// from a single goroutine (the HTTP adapter serializes requests for it).
type Streamer struct {
	cfg        Config
	log        *zap.Logger
	classifier *gen.Classifier
	builder    *Builder

	zones  map[world.ZoneCoord]*world.Zone
	saved  map[string]world.ZoneState
	radius int

	async       *asyncBuilder
	stateLoaded bool
}

func New(cfg Config) *Streamer {
	def := DefaultConfig()
	if cfg.ZoneSize <= 0 {
		cfg.ZoneSize = def.ZoneSize
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.InitialRadius <= 0 {
		cfg.InitialRadius = def.InitialRadius
	}
	if cfg.MaxRadius < cfg.InitialRadius {
		cfg.MaxRadius = cfg.InitialRadius
	}
	if cfg.BiomeScale == 0 {
		cfg.BiomeScale = def.BiomeScale
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	s := &Streamer{
		cfg:        cfg,
		log:        cfg.Log,
		classifier: gen.NewClassifier(gen.NewField(cfg.Seed), cfg.BiomeScale, cfg.Thresholds),
		builder: &Builder{
			Entities: cfg.Entities,
			Assets:   cfg.Assets,
			ZoneSize: cfg.ZoneSize,
			Log:      cfg.Log,
		},
		zones:  make(map[world.ZoneCoord]*world.Zone),
		saved:  make(map[string]world.ZoneState),
		radius: cfg.InitialRadius,
	}
	if cfg.Workers > 0 {
		s.async = newAsyncBuilder(cfg.Workers)
	}
	return s
}

// Tick recomputes residency around the focal world position: builds every
// missing coordinate inside the load radius, evicts everything outside it,
// and widens the radius by one ring until MaxRadius. Failures are isolated
// per coordinate; a failed cell is skipped this tick and retried on the next.
func (s *Streamer) Tick(ctx context.Context, focalX, focalY float64) TickReport {
	s.ensureStateLoaded(ctx)

	focal := world.CoordAt(focalX, focalY, s.cfg.ZoneSize)
	desired := s.window(focal)
	report := TickReport{Focal: focal, Radius: s.radius}

	if s.async != nil {
		report.Built, report.Restored, report.Failed = s.drainAsync(ctx, desired)
	}

	for _, coord := range coordsInWindow(focal, s.radius) {
		if _, resident := s.zones[coord]; resident {
			continue
		}
		if s.async != nil {
			s.submitAsync(ctx, coord)
			continue
		}
		zone, err := s.generate(coord)
		if err != nil {
			s.recordFailure(coord, err)
			report.Failed++
			continue
		}
		restored := s.publish(ctx, zone)
		report.Built++
		if restored {
			report.Restored++
		}
	}

	for coord, zone := range s.zones {
		if _, keep := desired[coord]; keep {
			continue
		}
		s.evict(ctx, coord, zone)
		report.Evicted++
	}

	if s.radius < s.cfg.MaxRadius {
		s.radius++
	}
	report.Resident = len(s.zones)
	return report
}

// generate runs the full pipeline for one cell: classify, select, vary, build.
// Deterministic per (seed, coordinate): the same cell always yields the same
// template choice and variation, so rebuilds after eviction are reproducible.
func (s *Streamer) generate(coord world.ZoneCoord) (*world.Zone, error) {
	biome := s.classifier.Classify(coord)
	zoneType := world.ZoneTypeFor(coord)
	rng := world.NewRNG(s.cfg.Seed, world.ZoneSeedLabel(coord))

	tmpl, err := s.cfg.Catalog.Random(biome, zoneType, rng)
	if err != nil {
		return nil, fmt.Errorf("select template for %s/%s: %w", biome, zoneType, err)
	}
	varied := tmpl.WithVariation(rng.Int63())

	zone, err := s.builder.Build(varied, coord)
	if err != nil {
		return nil, err
	}
	return zone, nil
}

// publish inserts a built zone into the table, merging any persisted state and
// announcing the load. Returns whether persisted state was restored.
func (s *Streamer) publish(_ context.Context, zone *world.Zone) bool {
	restored := false
	if saved, ok := s.saved[zone.ID]; ok {
		zone.Restore(saved)
		restored = true
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordRestore()
		}
	}
	s.zones[zone.Coord] = zone

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordBuild(zone.Template.Biome)
	}
	s.emitAmbient(zone)
	for _, obs := range s.cfg.Observers {
		obs.ZoneLoaded(zone)
	}
	s.log.Info("zone loaded",
		zap.String("zone", zone.ID),
		zap.Int("zx", zone.Coord.X),
		zap.Int("zy", zone.Coord.Y),
		zap.String("biome", string(zone.Template.Biome)),
		zap.String("template", zone.Template.Name),
		zap.Bool("restored", restored))
	return restored
}

func (s *Streamer) evict(ctx context.Context, coord world.ZoneCoord, zone *world.Zone) {
	snapshot := zone.Snapshot()
	s.saved[zone.ID] = snapshot
	if s.cfg.Store != nil {
		if err := s.cfg.Store.Save(ctx, zone.ID, snapshot); err != nil {
			s.log.Error("zone state save failed, keeping in-memory copy",
				zap.String("zone", zone.ID),
				zap.Error(err))
		}
	}
	delete(s.zones, coord)

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordEviction()
	}
	for _, obs := range s.cfg.Observers {
		obs.ZoneEvicted(coord, zone.ID)
	}
	s.log.Info("zone evicted",
		zap.String("zone", zone.ID),
		zap.Int("zx", coord.X),
		zap.Int("zy", coord.Y))
}

func (s *Streamer) recordFailure(coord world.ZoneCoord, err error) {
	kind := failureKind(err)
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordFailure(kind)
	}
	s.log.Warn("zone generation failed, will retry next tick",
		zap.String("zone", coord.ZoneID()),
		zap.Int("zx", coord.X),
		zap.Int("zy", coord.Y),
		zap.String("kind", kind),
		zap.Error(err))
}

// ensureStateLoaded pulls the persisted store exactly once. A broken store
// yields an empty map and a warning, never a failed boot.
func (s *Streamer) ensureStateLoaded(ctx context.Context) {
	if s.stateLoaded {
		return
	}
	s.stateLoaded = true
	if s.cfg.Store == nil {
		return
	}
	saved, err := s.cfg.Store.Load(ctx)
	if err != nil {
		s.log.Warn("persisted zone state unavailable, starting empty", zap.Error(err))
		return
	}
	if saved != nil {
		s.saved = saved
	}
	s.log.Info("persisted zone state loaded", zap.Int("zones", len(s.saved)))
}

// Flush saves every resident zone without evicting it. The host calls it at
// shutdown.
func (s *Streamer) Flush(ctx context.Context) {
	if s.cfg.Store == nil {
		return
	}
	for _, zone := range s.zones {
		snapshot := zone.Snapshot()
		s.saved[zone.ID] = snapshot
		if err := s.cfg.Store.Save(ctx, zone.ID, snapshot); err != nil {
			s.log.Error("zone state flush failed",
				zap.String("zone", zone.ID),
				zap.Error(err))
		}
	}
}

func (s *Streamer) emitAmbient(zone *world.Zone) {
	if s.cfg.Particles == nil {
		return
	}
	kind := zone.Template.Biome.Properties().ParticleKind
	if kind == "" {
		return
	}
	s.cfg.Particles.Emit(kind, zone.Origin.X, zone.Origin.Y, ambientParticleCount)
}

func (s *Streamer) window(focal world.ZoneCoord) map[world.ZoneCoord]struct{} {
	out := make(map[world.ZoneCoord]struct{})
	for _, c := range coordsInWindow(focal, s.radius) {
		out[c] = struct{}{}
	}
	return out
}

// coordsInWindow lists the square window in row-major order, so build order
// and logs are deterministic.
func coordsInWindow(focal world.ZoneCoord, radius int) []world.ZoneCoord {
	out := make([]world.ZoneCoord, 0, (2*radius+1)*(2*radius+1))
	for y := focal.Y - radius; y <= focal.Y+radius; y++ {
		for x := focal.X - radius; x <= focal.X+radius; x++ {
			out = append(out, world.ZoneCoord{X: x, Y: y})
		}
	}
	return out
}
