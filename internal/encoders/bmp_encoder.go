package encoders

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

//BMPEncoder uncompressed bitmap encoder
type BMPEncoder struct{}

func newBMPEncoder(Options) (Encoder, error) {
	return &BMPEncoder{}, nil
}

//Encode writes img as bmp
func (*BMPEncoder) Encode(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

//ContentType image/bmp
func (*BMPEncoder) ContentType() string { return "image/bmp" }

//Extension .bmp
func (*BMPEncoder) Extension() string { return ".bmp" }

func init() {
	registeredEncoders[BMPFormat] = newBMPEncoder
}
