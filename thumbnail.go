package rawpix

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail returns a preview of the decoded bitmap scaled down to fit
// within maxWidth x maxHeight, preserving aspect ratio. Bitmaps already
// within bounds are returned unscaled.
func Thumbnail(b *Bitmap, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, b.Image(), resize.Bilinear)
}
