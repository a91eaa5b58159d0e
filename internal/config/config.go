// Package config loads server settings from an optional YAML document, then
// applies environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the full server tuning. Fields double as the YAML schema;
// environment variables override whatever the file set.
type Config struct {
	Seed          int64   `json:"seed" yaml:"seed"`
	ZoneSize      int     `json:"zone_size" yaml:"zone_size"`
	InitialRadius int     `json:"initial_radius" yaml:"initial_radius"`
	MaxRadius     int     `json:"max_radius" yaml:"max_radius"`
	BiomeScale    float64 `json:"biome_scale" yaml:"biome_scale"`
	BuildWorkers  int     `json:"build_workers" yaml:"build_workers"`

	ZonesDir    string `json:"zones_dir" yaml:"zones_dir"`
	AssetsDir   string `json:"assets_dir" yaml:"assets_dir"`
	StatePath   string `json:"state_path" yaml:"state_path"`
	DatabaseURL string `json:"database_url" yaml:"database_url"`

	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	FeedAddr string `json:"feed_addr" yaml:"feed_addr"`
}

// Default returns the stock tuning: seed 42, 320-unit zones, a window that
// widens from one ring to two, file-backed state next to the binary.
func Default() Config {
	return Config{
		Seed:          42,
		ZoneSize:      320,
		InitialRadius: 1,
		MaxRadius:     2,
		BiomeScale:    0.1,
		ZonesDir:      "./zones",
		AssetsDir:     "./assets",
		StatePath:     "./data/zone_state.json",
		HTTPAddr:      ":8080",
		FeedAddr:      ":8081",
	}
}

// Load reads the YAML document at path over the defaults and applies the
// environment on top. A missing file is not an error: defaults plus
// environment carry a complete configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("open config: %w", err)
		default:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Seed = int64Env("WORLD_SEED", c.Seed)
	c.ZoneSize = intEnv("ZONE_SIZE", c.ZoneSize)
	c.InitialRadius = intEnv("INITIAL_RADIUS", c.InitialRadius)
	c.MaxRadius = intEnv("MAX_RADIUS", c.MaxRadius)
	c.BiomeScale = floatEnv("BIOME_SCALE", c.BiomeScale)
	c.BuildWorkers = intEnv("BUILD_WORKERS", c.BuildWorkers)
	c.ZonesDir = strEnv("ZONES_DIR", c.ZonesDir)
	c.StatePath = strEnv("STATE_PATH", c.StatePath)
	c.DatabaseURL = strEnv("DATABASE_URL", c.DatabaseURL)
	c.HTTPAddr = strEnv("HTTP_ADDR", c.HTTPAddr)
	c.FeedAddr = strEnv("FEED_ADDR", c.FeedAddr)
}

func (c Config) validate() error {
	if c.ZoneSize <= 0 {
		return fmt.Errorf("zone_size must be positive, got %d", c.ZoneSize)
	}
	if c.InitialRadius <= 0 {
		return fmt.Errorf("initial_radius must be positive, got %d", c.InitialRadius)
	}
	if c.MaxRadius < c.InitialRadius {
		return fmt.Errorf("max_radius %d below initial_radius %d", c.MaxRadius, c.InitialRadius)
	}
	if c.BuildWorkers < 0 {
		return fmt.Errorf("build_workers must not be negative, got %d", c.BuildWorkers)
	}
	return nil
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func int64Env(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
