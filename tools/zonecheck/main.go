// Command zonecheck lints a zone content directory. It loads every template
// through the same catalog the server uses and fails when any biome is
// missing a zone type bucket, since world generation can ask for any
// combination of the two.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	fstemplates "driftworld/internal/adapter/templates/fs"
	"driftworld/internal/domain/world"
)

func main() {
	var zonesDir string
	flag.StringVar(&zonesDir, "zones", envOr("ZONES_DIR", "./zones"), "zone template content root")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := fstemplates.New(zonesDir, logger)
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	biomes := []world.Biome{world.BiomeForest, world.BiomeTech, world.BiomeLava, world.BiomeIce}
	zoneTypes := []world.ZoneType{world.ZoneStart, world.ZoneEarlyGame, world.ZoneBoss}

	missing := 0
	for _, biome := range biomes {
		for _, zt := range zoneTypes {
			n := catalog.CountFor(biome, zt)
			if n == 0 {
				fmt.Printf("MISSING  %s/%s\n", biome, zt)
				missing++
				continue
			}
			fmt.Printf("ok       %s/%s: %d template(s)\n", biome, zt, n)
		}
	}

	fmt.Printf("%d templates in %d/%d buckets\n", catalog.Len(), len(biomes)*len(zoneTypes)-missing, len(biomes)*len(zoneTypes))
	if missing > 0 {
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
