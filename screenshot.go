package snip

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"
)

// Pixel is one color value read from a Screenshot
type Pixel struct {
	A, R, G, B uint8
}

// Screenshot is a captured frame. Pixels are stored top to bottom, four bytes
// each, in blue, green, red, alpha order. A Screenshot is never modified
// after capture.
type Screenshot struct {
	data       []byte
	height     int
	width      int
	rowLen     int
	pixelWidth int
	backend    string
}

// Height of the image in pixels
func (s *Screenshot) Height() int { return s.height }

// Width of the image in pixels
func (s *Screenshot) Width() int { return s.width }

// RowLen is the number of bytes in one row of the bitmap
func (s *Screenshot) RowLen() int { return s.rowLen }

// PixelWidth is the size of a pixel in bytes
func (s *Screenshot) PixelWidth() int { return s.pixelWidth }

// RawLen is the number of bytes in the bitmap
func (s *Screenshot) RawLen() int { return len(s.data) }

// Backend names the capture backend that produced the frame
func (s *Screenshot) Backend() string { return s.backend }

// Data returns a copy of the bitmap
func (s *Screenshot) Data() []byte {
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return data
}

// Pixel returns the pixel at (row, col). It panics when the pixel would
// be read past the end of the bitmap.
func (s *Screenshot) Pixel(row, col int) Pixel {
	idx := row*s.rowLen + col*s.pixelWidth
	if idx < 0 || idx+s.pixelWidth > len(s.data) {
		panic(fmt.Sprintf("snip: pixel (%d, %d) out of bounds", row, col))
	}
	return Pixel{
		A: s.data[idx+3],
		R: s.data[idx+2],
		G: s.data[idx+1],
		B: s.data[idx],
	}
}

// UnsafePointer exposes the live bitmap for interop with native encoders.
// The pointer is valid only while the Screenshot is reachable, writes
// through it are visible to every reader. It panics on an empty Screenshot.
func (s *Screenshot) UnsafePointer() unsafe.Pointer {
	return unsafe.Pointer(&s.data[0])
}

// UnsafeBytes returns the live bitmap without copying. Callers must not
// retain it past the Screenshot's lifetime.
func (s *Screenshot) UnsafeBytes() []byte {
	return s.data
}

// ColorModel implements image.Image
func (s *Screenshot) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image
func (s *Screenshot) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image, returning a transparent color outside the bounds
func (s *Screenshot) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(s.Bounds())) {
		return color.NRGBA{}
	}
	p := s.Pixel(y, x)
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// RGBA converts the bitmap into a newly allocated *image.RGBA
func (s *Screenshot) RGBA() *image.RGBA {
	img := image.NewRGBA(s.Bounds())
	for y := 0; y < s.height; y++ {
		src := s.data[y*s.rowLen:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < s.width; x++ {
			i, j := x*s.pixelWidth, x*4
			dst[j], dst[j+1], dst[j+2], dst[j+3] = src[i+2], src[i+1], src[i], src[i+3]
		}
	}
	return img
}
