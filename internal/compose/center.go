package compose

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// centerScale is how much larger (on the longer side) the resized background
// is than the base image it frames.
const centerScale = 1.2

// Center overlays the base image, unscaled, at the center of the background.
//
// The background is resized preserving its aspect ratio so that its longer
// resulting side equals round(max(baseW, baseH) * 1.2). The base is never
// scaled; if the background's aspect ratio forces it below the base size,
// the base is clipped at the canvas edges. Output dimensions equal the
// resized background dimensions.
type Center struct{}

func (Center) Compose(base, background image.Image) (image.Image, error) {
	bb := base.Bounds()
	longest := bb.Dx()
	if bb.Dy() > longest {
		longest = bb.Dy()
	}
	target := int(math.Round(float64(longest) * centerScale))

	var bg *image.NRGBA
	if background.Bounds().Dx() >= background.Bounds().Dy() {
		bg = imaging.Resize(background, target, 0, imaging.Lanczos)
	} else {
		bg = imaging.Resize(background, 0, target, imaging.Lanczos)
	}

	return imaging.OverlayCenter(bg, base, 1.0), nil
}
