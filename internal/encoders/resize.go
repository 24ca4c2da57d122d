package encoders

import (
	"image"

	"github.com/nfnt/resize"
)

// FitWidth scales img down to maxWidth keeping the aspect ratio.
// Images already narrow enough, or a maxWidth <= 0, are returned as is.
func FitWidth(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}

type rgbaConverter interface {
	RGBA() *image.RGBA
}

// Prepare turns img into a flat *image.RGBA when it knows how to, then
// applies FitWidth
func Prepare(img image.Image, maxWidth int) image.Image {
	if c, ok := img.(rgbaConverter); ok {
		img = c.RGBA()
	}
	return FitWidth(img, maxWidth)
}
