package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
	"github.com/theoremus-urban-solutions/trace-matcher/config"
	"github.com/theoremus-urban-solutions/trace-matcher/formatter"
	"github.com/theoremus-urban-solutions/trace-matcher/ingest"
	"github.com/theoremus-urban-solutions/trace-matcher/mapbox"
	"github.com/theoremus-urban-solutions/trace-matcher/server"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	configPath := flag.String("config", "config.yml", "path to config file")
	gpxPath := flag.String("gpx", "", "GPX track file to match (oneshot)")
	rtDumps := flag.String("gtfsrt", "", "comma-separated GTFS-RT VehiclePositions dump files (oneshot)")
	vehicle := flag.String("vehicle", "", "vehicle id filter for GTFS-RT dumps")
	format := flag.String("format", "geojson", "geojson|json")
	output := flag.String("output", "", "output file (default stdout)")
	timeout := flag.Duration("timeout", 60*time.Second, "overall matching deadline (oneshot)")
	flag.Parse()

	tracematcher.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client, err := mapbox.NewClient(cfg.Mapbox, cfg.Pipeline.SearchRadiusMeters)
	if err != nil {
		log.Fatalf("failed to create routing client: %v", err)
	}
	matcher := tracematcher.NewMatcher(client, cfg.Pipeline)

	switch *mode {
	case "oneshot":
		fixes, err := readFixes(*gpxPath, *rtDumps, *vehicle)
		if err != nil {
			log.Fatalf("failed to read input: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		result, err := matcher.Match(ctx, fixes)
		if err != nil {
			log.Fatalf("matching failed: %v", err)
		}
		log.Printf("matched %d of %d fixes via %s", result.ProcessedPoints, result.OriginalPoints, result.Method)

		var body []byte
		if *format == "geojson" {
			body, err = formatter.BuildGeoJSON(result)
			if err != nil {
				log.Fatalf("failed to encode geojson: %v", err)
			}
		} else {
			body = formatter.BuildJSON(result)
		}
		if *output == "" {
			fmt.Println(string(body))
		} else if err := os.WriteFile(*output, body, 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", *output, err)
		}

	case "serve":
		srv := server.New(matcher, cfg)
		srv.Start()
		srv.HandleGracefulShutdown()

	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// readFixes loads fixes from whichever input flag is set
func readFixes(gpxPath, rtDumps, vehicle string) ([]tracematcher.Fix, error) {
	switch {
	case gpxPath != "" && rtDumps != "":
		return nil, fmt.Errorf("-gpx and -gtfsrt are mutually exclusive")
	case gpxPath != "":
		return ingest.ReadGPX(gpxPath)
	case rtDumps != "":
		paths := strings.Split(rtDumps, ",")
		for i := range paths {
			paths[i] = strings.TrimSpace(paths[i])
		}
		return ingest.ReadVehiclePositions(paths, vehicle)
	default:
		return nil, fmt.Errorf("an input is required: -gpx=<file> or -gtfsrt=<files>")
	}
}
