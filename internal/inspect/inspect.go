// Package inspect renders catalog cutout boundaries onto their backgrounds
// so a catalog author can eyeball boundary fractions before a batch run.
package inspect

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/synthdocs/synthgen/internal/catalog"
	"github.com/synthdocs/synthgen/internal/imaging"
)

// outlineThickness is the border width of the rendered rectangle, in pixels.
const outlineThickness = 3

// RenderOutlines writes one preview image per embedded catalog entry into
// outDir, named <backgroundStem>_boundary.png, with the declared transparent
// boundary outlined in the given hex color ("#RRGGBB"). Center entries have
// no boundary and are skipped. Per-entry failures are logged and do not stop
// the remaining previews.
func RenderOutlines(entries []catalog.Entry, bgDir, outDir, hexColor string, log zerolog.Logger) error {
	c, err := colorful.Hex(hexColor)
	if err != nil {
		return fmt.Errorf("invalid outline color %q: %w", hexColor, err)
	}
	outline := color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}

	cache := imaging.NewImageCache()
	for i, e := range entries {
		if e.Composite != catalog.ModeEmbedded {
			continue
		}

		bg, err := cache.Load(filepath.Join(bgDir, e.Filename))
		if err != nil {
			log.Error().Err(err).Str("background", e.Filename).Msg("preview failed")
			continue
		}

		preview := drawOutline(bg, *e.TransparentBoundary, outline)
		stem := strings.TrimSuffix(e.Filename, filepath.Ext(e.Filename))
		outPath := filepath.Join(outDir, stem+"_boundary.png")
		if err := imaging.Save(preview, outPath); err != nil {
			log.Error().Err(err).Str("background", e.Filename).Msg("preview failed")
			continue
		}

		log.Info().Int("index", i).Str("output", outPath).Msg("boundary preview written")
	}

	return nil
}

// drawOutline copies the background and draws the boundary rectangle on top.
func drawOutline(bg image.Image, b catalog.Boundary, outline color.NRGBA) image.Image {
	bounds := bg.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, bg, bounds.Min, draw.Src)

	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	x1 := bounds.Min.X + int(math.Floor(b.Left*w))
	y1 := bounds.Min.Y + int(math.Floor(b.Top*h))
	x2 := bounds.Min.X + int(math.Floor((b.Left+b.Width)*w))
	y2 := bounds.Min.Y + int(math.Floor((b.Top+b.Height)*h))

	for t := 0; t < outlineThickness; t++ {
		for x := x1; x < x2; x++ {
			setIn(result, x, y1+t, outline)
			setIn(result, x, y2-1-t, outline)
		}
		for y := y1; y < y2; y++ {
			setIn(result, x1+t, y, outline)
			setIn(result, x2-1-t, y, outline)
		}
	}

	return result
}

func setIn(img *image.RGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
