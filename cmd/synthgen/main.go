package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/synthdocs/synthgen/internal/catalog"
	"github.com/synthdocs/synthgen/internal/generate"
	"github.com/synthdocs/synthgen/internal/inspect"
	"github.com/synthdocs/synthgen/internal/logger"
	"github.com/synthdocs/synthgen/internal/split"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	docType := flag.String("type", "", "document type to generate ("+strings.Join(generate.SupportedDocumentTypes(), ", ")+")")
	outDir := flag.String("out", "", "output directory for the train/test corpus")
	ratio := flag.Float64("ratio", split.DefaultTrainRatio, "train split ratio, in (0,1)")
	workers := flag.Int("workers", 1, "number of concurrent pair workers")
	basesDir := flag.String("bases", "bases", "root directory of base images, one subdirectory per document type")
	bgDir := flag.String("backgrounds", "backgrounds", "background image directory")
	catalogPath := flag.String("catalog", filepath.Join("backgrounds", "catalog.json"), "background catalog file (JSON)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	pretty := flag.Bool("pretty", false, "human-readable console output instead of JSON log lines")
	inspectMode := flag.Bool("inspect", false, "render cutout boundary previews into -out instead of generating")
	outlineColor := flag.String("outline-color", "#ff0000", "boundary outline color for -inspect")
	version := flag.Bool("version", false, "print version information")
	flag.Parse()

	if *version {
		fmt.Printf("synthgen %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	logger.Init(logger.Options{Level: *logLevel, Pretty: *pretty})
	log := logger.Get()

	if *outDir == "" {
		log.Fatal().Msg("-out is required")
	}

	entries, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	if *inspectMode {
		if err := inspect.RenderOutlines(entries, *bgDir, *outDir, *outlineColor, *log); err != nil {
			log.Fatal().Err(err).Msg("boundary preview failed")
		}
		return
	}

	dt, err := generate.ParseDocumentType(*docType)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -type")
	}
	if *ratio <= 0 || *ratio >= 1 {
		log.Fatal().Float64("ratio", *ratio).Msg("-ratio must be in (0,1)")
	}

	driver := generate.New(generate.Config{
		BasesDir:       *basesDir,
		BackgroundsDir: *bgDir,
		OutputDir:      *outDir,
		TrainRatio:     *ratio,
		Workers:        *workers,
	}, entries, *log)

	summary, err := driver.Generate(context.Background(), dt)
	if err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}

	log.Info().
		Int64("pairs", summary.Pairs).
		Int64("generated", summary.Generated).
		Int64("up_to_date", summary.UpToDate).
		Int64("orientation_skips", summary.OrientationSkips).
		Int64("failures", summary.Failures).
		Msg("run complete")
}
