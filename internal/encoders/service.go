package encoders

import (
	"image"
	"io"
)

// Service creates encoder instances
type Service interface {
	NewEncoder(format ImageFormat, opts Options) (Encoder, error)
	Supports(format ImageFormat) bool
}

// Encoder writes an image in one file format
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	ContentType() string
	Extension() string
}

// Options tune an encoder, fields that don't apply to a format are ignored
type Options struct {
	// Quality is the JPEG quality, 1-100
	Quality int
}

//ImageFormat names an output format
type ImageFormat = string

const (
	//PNGFormat png
	PNGFormat ImageFormat = "png"
	//JPEGFormat jpeg
	JPEGFormat ImageFormat = "jpeg"
	//BMPFormat bmp
	BMPFormat ImageFormat = "bmp"
	//TIFFFormat tiff
	TIFFFormat ImageFormat = "tiff"
)
