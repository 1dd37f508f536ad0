package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// jpegQuality is the pinned encode quality for generated corpus files.
// Changing it invalidates nothing (the skip cache is mtime-based) but does
// change bytes on regeneration, so it stays fixed.
const jpegQuality = 90

// Save encodes an image to a file, choosing the format from the file
// extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
