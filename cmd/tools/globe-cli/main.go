package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/annel0/mmo-globe/internal/config"
	"github.com/annel0/mmo-globe/internal/globe"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (default: $GLOBE_CONFIG)")
		command    = flag.String("cmd", "equiv", "Command: classify, equiv, chunks")
		root       = flag.Uint("root", 0, "Root (panel) index")
		x          = flag.Uint64("x", 0, "X grid coordinate")
		y          = flag.Uint64("y", 0, "Y grid coordinate")
		z          = flag.Uint64("z", 0, "Z layer")
		asJSON     = flag.Bool("json", false, "Print JSON instead of text")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	spec, err := cfg.Globe.ToSpec()
	if err != nil {
		log.Fatalf("❌ Invalid globe config: %v", err)
	}

	if *root > 255 {
		log.Fatalf("❌ Root %d out of range", *root)
	}
	p := globe.NewGridPoint3(globe.Root(*root), globe.GridCoord(*x), globe.GridCoord(*y), globe.GridCoord(*z))

	if err := run(os.Stdout, *command, spec, p, *asJSON); err != nil {
		log.Fatalf("❌ %s failed: %v", *command, err)
	}
}

func run(w io.Writer, command string, spec globe.Spec, p globe.GridPoint3, asJSON bool) error {
	res := spec.Resolution()

	switch command {
	case "classify", "equiv":
		// Проверяем точку на границе, чтобы не паниковать в резолвере
		if err := globe.CheckBounds(p, res); err != nil {
			return err
		}
	}

	switch command {
	case "classify":
		region := globe.Classify(p, res)
		if asJSON {
			return json.NewEncoder(w).Encode(map[string]string{"region": region.String()})
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", p, region)
		return err

	case "equiv":
		points := globe.Collect(p, res)
		if asJSON {
			return json.NewEncoder(w).Encode(points)
		}
		fmt.Fprintf(w, "%s: %s, %d point(s)\n", p, globe.Classify(p, res), len(points))
		for _, q := range points {
			fmt.Fprintf(w, "  %s\n", q)
		}
		return nil

	case "chunks":
		for origin := range spec.ChunkOrigins() {
			fmt.Fprintln(w, origin)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
