// Package fstemplates loads zone templates from a content directory laid out
// as root/<biome>/<template>.{json,yaml,yml}, one template per file. Tile
// grids come either as an explicit tile list or as row strings decoded through
// a legend of one-rune symbols.
package fstemplates

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type bucketKey struct {
	biome    world.Biome
	zoneType world.ZoneType
}

type index struct {
	buckets map[bucketKey][]*world.Template
	byName  map[string]*world.Template
	count   int
}

// Catalog is a reloadable template index. Reads share an RLock; Reload builds
// a fresh index off to the side and swaps it in whole, so templates handed out
// earlier stay valid.
type Catalog struct {
	root string
	log  *zap.Logger

	mu  sync.RWMutex
	idx *index
}

func New(root string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{root: root, log: log}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rescans the content directory. Files that fail to parse or validate
// are logged and skipped; they never displace the rest of the catalog. The
// scan order is sorted, so bucket order (and therefore seeded selection) is
// stable across restarts.
func (c *Catalog) Reload() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("scan template root %s: %w", c.root, err)
	}

	idx := &index{
		buckets: map[bucketKey][]*world.Template{},
		byName:  map[string]*world.Template{},
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(c.root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			c.log.Warn("template directory unreadable, skipping",
				zap.String("dir", dir),
				zap.Error(err))
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			tmpl, err := loadFile(path)
			if err != nil {
				if errors.Is(err, errSkippedExtension) {
					continue
				}
				c.log.Warn("template rejected",
					zap.String("file", path),
					zap.Error(err))
				continue
			}
			if prev, dup := idx.byName[tmpl.Name]; dup {
				c.log.Warn("duplicate template name, keeping latest",
					zap.String("name", tmpl.Name),
					zap.String("file", path),
					zap.String("displaced_biome", string(prev.Biome)))
			}
			key := bucketKey{biome: tmpl.Biome, zoneType: tmpl.ZoneType}
			idx.buckets[key] = append(idx.buckets[key], tmpl)
			idx.byName[tmpl.Name] = tmpl
			idx.count++
		}
	}

	c.mu.Lock()
	c.idx = idx
	c.mu.Unlock()
	c.log.Info("template catalog loaded",
		zap.String("root", c.root),
		zap.Int("templates", idx.count),
		zap.Int("buckets", len(idx.buckets)))
	return nil
}

// Random picks a template from the (biome, zoneType) bucket using the caller's
// rng. An empty bucket is the caller's problem to surface; no substitution.
func (c *Catalog) Random(biome world.Biome, zoneType world.ZoneType, r *rand.Rand) (*world.Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bucket := c.idx.buckets[bucketKey{biome: biome, zoneType: zoneType}]
	if len(bucket) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ports.ErrTemplateNotFound, biome, zoneType)
	}
	return bucket[r.Intn(len(bucket))], nil
}

func (c *Catalog) ByName(name string) (*world.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.idx.byName[name]
	return t, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx.count
}

// CountFor reports how many templates the (biome, zoneType) bucket holds.
func (c *Catalog) CountFor(biome world.Biome, zoneType world.ZoneType) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.idx.buckets[bucketKey{biome: biome, zoneType: zoneType}])
}

var _ ports.TemplateCatalog = (*Catalog)(nil)

// templateDoc is the on-disk document: a template plus the optional row-string
// grid encoding.
type templateDoc struct {
	world.Template `yaml:",inline"`
	Rows           []string          `json:"rows,omitempty" yaml:"rows,omitempty"`
	Legend         map[string]string `json:"legend,omitempty" yaml:"legend,omitempty"`
}

var errSkippedExtension = errors.New("unhandled extension")

func loadFile(path string) (*world.Template, error) {
	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, errSkippedExtension
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc templateDoc
	if err := unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	tmpl := doc.Template
	if len(doc.Rows) > 0 {
		tiles, err := decodeRows(doc.Rows, doc.Legend)
		if err != nil {
			return nil, err
		}
		tmpl.Tiles = tiles
	}
	for i := range tmpl.Tiles {
		if world.IsPlatformKind(tmpl.Tiles[i].Kind) {
			tmpl.Tiles[i].Platform = true
		}
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// decodeRows expands row strings through the legend. Symbols absent from the
// legend are empty space.
func decodeRows(rows []string, legend map[string]string) ([]world.Tile, error) {
	kinds := make(map[rune]string, len(legend))
	for sym, kind := range legend {
		runes := []rune(sym)
		if len(runes) != 1 {
			return nil, fmt.Errorf("%w: legend symbol %q is not a single rune", world.ErrInvalidTemplate, sym)
		}
		kinds[runes[0]] = kind
	}

	var tiles []world.Tile
	for y, row := range rows {
		x := 0
		for _, sym := range row {
			if kind, ok := kinds[sym]; ok {
				tiles = append(tiles, world.Tile{Kind: kind, X: x, Y: y})
			}
			x++
		}
	}
	return tiles, nil
}
