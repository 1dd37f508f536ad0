package compose

import (
	"errors"
	"image"

	"github.com/synthdocs/synthgen/internal/catalog"
)

// ErrOrientationMismatch is returned by the embedded compositor when the
// base image's orientation differs from the one the background declares.
// It marks a pair to skip, not a failure: callers drop the pair silently.
var ErrOrientationMismatch = errors.New("base orientation does not match background cutout")

// Compositor produces one output image from a base document image and a
// background texture. Implementations are stateless and safe for concurrent
// use.
type Compositor interface {
	Compose(base, background image.Image) (image.Image, error)
}

// ForEntry selects the compositor for a catalog entry by its composite mode.
// The catalog validates modes at load time, so an unknown mode here is a
// programming error and panics.
func ForEntry(e catalog.Entry) Compositor {
	switch e.Composite {
	case catalog.ModeCenter:
		return Center{}
	case catalog.ModeEmbedded:
		return Embedded{
			Orientation: e.Orientation,
			Boundary:    *e.TransparentBoundary,
		}
	default:
		panic("compose: unknown composite mode " + string(e.Composite))
	}
}
