// Package generate drives batch corpus generation: it enumerates
// (base, background) pairs, decides skip versus regenerate per pair, routes
// outputs into train/test, and dispatches to the right compositor.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/synthdocs/synthgen/internal/catalog"
	"github.com/synthdocs/synthgen/internal/compose"
	"github.com/synthdocs/synthgen/internal/imaging"
	"github.com/synthdocs/synthgen/internal/split"
)

// Config holds the directory layout and run parameters for a Driver.
type Config struct {
	// BasesDir is the root of the base image tree; base images for a
	// document type live directly under BasesDir/<type>/.
	BasesDir string

	// BackgroundsDir is the flat directory holding the background images
	// referenced by catalog entries.
	BackgroundsDir string

	// OutputDir receives the train/ and test/ subdirectories.
	OutputDir string

	// TrainRatio is the target train split fraction in (0,1); values
	// outside that range fall back to the default.
	TrainRatio float64

	// Workers bounds how many pairs are processed concurrently.
	// Values below 1 mean sequential.
	Workers int
}

// Summary reports what a Generate run did.
type Summary struct {
	Pairs            int64 // pairs considered
	Generated        int64 // outputs written
	UpToDate         int64 // outputs newer than their base, skipped
	OrientationSkips int64 // embedded pairs skipped on orientation
	Failures         int64 // pairs that failed decode/compose/encode
}

// Driver generates the output corpus for one document type per call.
// Pairs are independent: the only state shared between them is the
// read-only catalog and the decode cache.
type Driver struct {
	cfg     Config
	entries []catalog.Entry
	cache   *imaging.ImageCache
	split   split.Assigner
	log     zerolog.Logger

	generated        atomic.Int64
	upToDate         atomic.Int64
	orientationSkips atomic.Int64
	failures         atomic.Int64
}

// New creates a Driver over a loaded background catalog.
func New(cfg Config, entries []catalog.Entry, log zerolog.Logger) *Driver {
	return &Driver{
		cfg:     cfg,
		entries: entries,
		cache:   imaging.NewImageCache(),
		split:   split.New(cfg.TrainRatio),
		log:     log,
	}
}

// Generate produces outputs for every (base, background) pair of the given
// document type. An empty base directory is not a failure: the run ends
// gracefully with a zero summary. Per-pair failures are logged, counted and
// isolated; they never abort the rest of the batch.
func (d *Driver) Generate(ctx context.Context, docType DocumentType) (Summary, error) {
	if _, err := ParseDocumentType(string(docType)); err != nil {
		return Summary{}, err
	}

	baseDir := filepath.Join(d.cfg.BasesDir, string(docType))
	bases, err := imaging.ListBases(baseDir)
	if err != nil {
		return Summary{}, err
	}
	if len(bases) == 0 {
		d.log.Warn().Str("dir", baseDir).Msg("no base images found, nothing to do")
		return Summary{}, nil
	}

	for _, bucket := range []split.Bucket{split.Train, split.Test} {
		if err := os.MkdirAll(filepath.Join(d.cfg.OutputDir, string(bucket)), 0o755); err != nil {
			return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := d.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	var pairs int64
	for _, basePath := range bases {
		info, err := os.Stat(basePath)
		if err != nil {
			d.log.Error().Err(err).Str("base", basePath).Msg("cannot stat base image")
			d.failures.Add(int64(len(d.entries)))
			pairs += int64(len(d.entries))
			continue
		}
		baseMtime := info.ModTime()

		for idx, entry := range d.entries {
			pairs++
			basePath, idx, entry := basePath, idx, entry
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				d.processPair(basePath, baseMtime, idx, entry)
				return nil
			})
		}
	}

	_ = g.Wait() // workers never return errors

	return Summary{
		Pairs:            pairs,
		Generated:        d.generated.Load(),
		UpToDate:         d.upToDate.Load(),
		OrientationSkips: d.orientationSkips.Load(),
		Failures:         d.failures.Load(),
	}, nil
}

// processPair handles one (base, background) pair end to end. Failures are
// counted and logged, never propagated.
func (d *Driver) processPair(basePath string, baseMtime time.Time, idx int, entry catalog.Entry) {
	name := outputName(basePath, idx)
	bucket := d.split.Assign(name)
	outPath := filepath.Join(d.cfg.OutputDir, string(bucket), name)

	// Incremental cache check: an output at least as new as its base is
	// assumed current. This is the restart recovery mechanism, too.
	if info, err := os.Stat(outPath); err == nil && !info.ModTime().Before(baseMtime) {
		d.upToDate.Add(1)
		d.log.Debug().Str("output", outPath).Msg("up to date, skipped")
		return
	}

	baseImg, err := d.cache.Load(basePath)
	if err != nil {
		d.fail(basePath, entry, err)
		return
	}
	bgImg, err := d.cache.Load(filepath.Join(d.cfg.BackgroundsDir, entry.Filename))
	if err != nil {
		d.fail(basePath, entry, err)
		return
	}

	out, err := compose.ForEntry(entry).Compose(baseImg, bgImg)
	if errors.Is(err, compose.ErrOrientationMismatch) {
		d.orientationSkips.Add(1)
		d.log.Debug().
			Str("base", basePath).
			Str("background", entry.Filename).
			Msg("orientation mismatch, skipped")
		return
	}
	if err != nil {
		d.fail(basePath, entry, err)
		return
	}

	if err := imaging.Save(out, outPath); err != nil {
		d.fail(basePath, entry, err)
		return
	}

	d.generated.Add(1)
	d.log.Info().
		Str("base", filepath.Base(basePath)).
		Str("background", entry.Filename).
		Str("bucket", string(bucket)).
		Str("output", outPath).
		Msg("generated")
}

func (d *Driver) fail(basePath string, entry catalog.Entry, err error) {
	d.failures.Add(1)
	d.log.Error().Err(err).
		Str("base", basePath).
		Str("background", entry.Filename).
		Msg("pair failed")
}

// outputName derives the deterministic output file name for a base file and
// a catalog index: <baseStem>_<index>.jpg. The split assigner hashes this
// exact name, so it is a compatibility contract.
func outputName(basePath string, idx int) string {
	stem := strings.TrimSuffix(filepath.Base(basePath), filepath.Ext(basePath))
	return stem + "_" + strconv.Itoa(idx) + ".jpg"
}
