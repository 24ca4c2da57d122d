package encoders

import (
	"image"
	"io"

	"golang.org/x/image/tiff"
)

//TIFFEncoder deflate-compressed tiff encoder
type TIFFEncoder struct{}

func newTIFFEncoder(Options) (Encoder, error) {
	return &TIFFEncoder{}, nil
}

//Encode writes img as tiff
func (*TIFFEncoder) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

//ContentType image/tiff
func (*TIFFEncoder) ContentType() string { return "image/tiff" }

//Extension .tiff
func (*TIFFEncoder) Extension() string { return ".tiff" }

func init() {
	registeredEncoders[TIFFFormat] = newTIFFEncoder
}
