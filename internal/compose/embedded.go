package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"

	"github.com/synthdocs/synthgen/internal/catalog"
)

// Embedded fits the base image into the transparent cutout region of a
// background.
//
// The base keeps its width and is stretch-resized (original aspect ratio
// ignored) to the cutout's aspect ratio. The background is then scaled
// uniformly so the cutout width matches the base width, and the base is
// placed behind the background: opaque background pixels such as printed
// frames stay visible on top, while the transparent cutout reveals the base.
// Output dimensions equal the scaled background dimensions.
//
// Boundaries outside the unit square are a catalog configuration error and
// are not validated here; behavior is undefined for them.
type Embedded struct {
	Orientation catalog.Orientation
	Boundary    catalog.Boundary
}

func (e Embedded) Compose(base, background image.Image) (image.Image, error) {
	bb := base.Bounds()
	landscape := bb.Dx() > bb.Dy()
	if landscape != (e.Orientation == catalog.Landscape) {
		return nil, ErrOrientationMismatch
	}

	baseW := bb.Dx()
	resizedH := int(math.Floor(float64(baseW) * e.Boundary.Height / e.Boundary.Width))
	resizedBase := imaging.Resize(base, baseW, resizedH, imaging.Lanczos)

	// Scale so the cutout, once scaled, is exactly as wide as the base.
	bgb := background.Bounds()
	s := float64(baseW) / (float64(bgb.Dx()) * e.Boundary.Width)
	scaledW := int(math.Round(float64(bgb.Dx()) * s))
	scaledH := int(math.Round(float64(bgb.Dy()) * s))
	scaledBg := imaging.Resize(background, scaledW, scaledH, imaging.Lanczos)

	left := int(math.Floor(e.Boundary.Left * float64(scaledW)))
	top := int(math.Floor(e.Boundary.Top * float64(scaledH)))

	canvas := imaging.New(scaledW, scaledH, color.NRGBA{})
	canvas = imaging.Paste(canvas, resizedBase, image.Pt(left, top))

	return blend.Normal(canvas, scaledBg), nil
}
