// Package catalog loads and validates the background definition catalog.
//
// The catalog is a single JSON array loaded once per run. The position of an
// entry within the array is its index: output file names embed it, so array
// order is a compatibility contract, not an implementation detail.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Mode selects which compositor handles a background.
type Mode string

const (
	// ModeCenter overlays the base at the center of the background.
	ModeCenter Mode = "center"
	// ModeEmbedded fits the base into a transparent cutout region.
	ModeEmbedded Mode = "embedded"
)

// Orientation describes the expected shape of a base image.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Boundary is a rectangular cutout expressed as fractions of the background
// dimensions, all in [0,1].
type Boundary struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Entry is one background definition.
//
// Orientation and TransparentBoundary are required when Composite is
// ModeEmbedded and ignored otherwise.
type Entry struct {
	Filename            string      `json:"filename"`
	Composite           Mode        `json:"composite"`
	Orientation         Orientation `json:"orientation,omitempty"`
	TransparentBoundary *Boundary   `json:"transparentBoundary,omitempty"`
}

// Load reads and validates a catalog file. Any malformation is fatal at load
// time: every pair of a run depends on a valid catalog, so there is no point
// starting work with a broken one.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, e.Filename, err)
		}
	}

	return entries, nil
}

func validate(e Entry) error {
	if e.Filename == "" {
		return fmt.Errorf("missing filename")
	}

	switch e.Composite {
	case ModeCenter:
		return nil
	case ModeEmbedded:
		// fall through to embedded checks
	default:
		return fmt.Errorf("unknown composite mode %q", e.Composite)
	}

	if e.Orientation != Landscape && e.Orientation != Portrait {
		return fmt.Errorf("embedded entry requires orientation landscape or portrait, got %q", e.Orientation)
	}

	b := e.TransparentBoundary
	if b == nil {
		return fmt.Errorf("embedded entry requires transparentBoundary")
	}
	if b.Left < 0 || b.Top < 0 {
		return fmt.Errorf("boundary origin must be non-negative, got left=%g top=%g", b.Left, b.Top)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("boundary extent must be positive, got width=%g height=%g", b.Width, b.Height)
	}
	if b.Left+b.Width > 1 || b.Top+b.Height > 1 {
		return fmt.Errorf("boundary exceeds unit square: left+width=%g top+height=%g", b.Left+b.Width, b.Top+b.Height)
	}

	return nil
}
