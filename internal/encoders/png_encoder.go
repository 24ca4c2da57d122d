package encoders

import (
	"image"
	"image/png"
	"io"
)

//PNGEncoder lossless png encoder
type PNGEncoder struct {
	encoder png.Encoder
}

func newPNGEncoder(Options) (Encoder, error) {
	return &PNGEncoder{encoder: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

//Encode writes img as png
func (e *PNGEncoder) Encode(w io.Writer, img image.Image) error {
	return e.encoder.Encode(w, img)
}

//ContentType image/png
func (*PNGEncoder) ContentType() string { return "image/png" }

//Extension .png
func (*PNGEncoder) Extension() string { return ".png" }

func init() {
	registeredEncoders[PNGFormat] = newPNGEncoder
}
