package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"

	staticassets "driftworld/internal/adapter/assets/static"
	mementity "driftworld/internal/adapter/entity/memory"
	"driftworld/internal/adapter/feed"
	httpadapter "driftworld/internal/adapter/http"
	metricsinmem "driftworld/internal/adapter/metrics/inmemory"
	memparticles "driftworld/internal/adapter/particles/memory"
	filestate "driftworld/internal/adapter/state/file"
	gormstate "driftworld/internal/adapter/state/gorm"
	memstate "driftworld/internal/adapter/state/memory"
	fstemplates "driftworld/internal/adapter/templates/fs"
	"driftworld/internal/app/ports"
	"driftworld/internal/app/spawn"
	"driftworld/internal/app/stream"
	"driftworld/internal/config"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := fstemplates.New(cfg.ZonesDir, logger)
	if err != nil {
		logger.Fatal("load zone templates",
			zap.String("dir", cfg.ZonesDir),
			zap.Error(err))
	}
	logger.Info("zone templates loaded",
		zap.String("dir", cfg.ZonesDir),
		zap.Int("templates", catalog.Len()))

	entities := mementity.NewRegistry()
	particles := memparticles.NewEmitter(0)
	recorder := metricsinmem.NewRecorder()
	spawner := spawn.New(entities, logger)
	hub := feed.NewHub(logger)

	streamer := stream.New(stream.Config{
		Seed:          cfg.Seed,
		ZoneSize:      cfg.ZoneSize,
		InitialRadius: cfg.InitialRadius,
		MaxRadius:     cfg.MaxRadius,
		BiomeScale:    cfg.BiomeScale,
		Workers:       cfg.BuildWorkers,
		Catalog:       catalog,
		Entities:      entities,
		Assets:        staticassets.Provider{Root: cfg.AssetsDir},
		Particles:     particles,
		Store:         buildStateStore(cfg, logger),
		Metrics:       recorder,
		Observers:     []ports.ZoneObserver{spawner, hub},
		Log:           logger,
	})

	feedSrv := startFeed(cfg.FeedAddr, hub, logger)

	h := &httpadapter.Handler{World: streamer, KPI: recorder, Ambient: particles}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	logger.Info("driftworld server listening",
		zap.String("http", cfg.HTTPAddr),
		zap.String("feed", cfg.FeedAddr),
		zap.Int64("seed", cfg.Seed))
	s.Spin()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := feedSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("feed listener shutdown", zap.Error(err))
	}
	hub.Close()
	streamer.Flush(shutdownCtx)
	logger.Info("zone state flushed")
}

// buildStateStore prefers Postgres, then the JSON state file, then process
// memory.
func buildStateStore(cfg config.Config, logger *zap.Logger) ports.ZoneStateStore {
	if cfg.DatabaseURL != "" {
		db, err := gormstate.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open postgres", zap.Error(err))
		}
		store, err := gormstate.NewStore(db, logger)
		if err != nil {
			logger.Fatal("migrate zone state schema", zap.Error(err))
		}
		logger.Info("zone state persisted to postgres")
		return store
	}
	if cfg.StatePath != "" {
		logger.Info("zone state persisted to file", zap.String("path", cfg.StatePath))
		return filestate.New(cfg.StatePath)
	}
	logger.Info("zone state kept in memory only")
	return memstate.New()
}

// startFeed serves the websocket feed on its own listener so the hertz API
// surface stays untouched.
func startFeed(addr string, hub *feed.Hub, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("feed listener failed", zap.Error(err))
		}
	}()
	return srv
}

func configPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "config.yaml"
}
