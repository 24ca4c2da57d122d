package encoders

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
)

const defaultJPEGQuality = 90

//JPEGEncoder lossy jpeg encoder
type JPEGEncoder struct {
	quality int
}

func newJPEGEncoder(opts Options) (Encoder, error) {
	quality := opts.Quality
	if quality == 0 {
		quality = defaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality must be 1-100, got %d", quality)
	}
	return &JPEGEncoder{quality: quality}, nil
}

//Encode writes img as jpeg
func (e *JPEGEncoder) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: e.quality})
}

//ContentType image/jpeg
func (*JPEGEncoder) ContentType() string { return "image/jpeg" }

//Extension .jpg
func (*JPEGEncoder) Extension() string { return ".jpg" }

func init() {
	registeredEncoders[JPEGFormat] = newJPEGEncoder
}
