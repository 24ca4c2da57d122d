package frame

import (
	"errors"
	"fmt"
)

// PixelWidth is the number of bytes per pixel in both raw and normalized frames
const PixelWidth = 4

// ChannelOrder describes the first three bytes of a raw 4-byte pixel.
// The fourth byte is never trusted.
type ChannelOrder int

const (
	//OrderBGRX blue, green, red, unused
	OrderBGRX ChannelOrder = iota
	//OrderRGBX red, green, blue, unused
	OrderRGBX
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderBGRX:
		return "BGRX"
	case OrderRGBX:
		return "RGBX"
	}
	return fmt.Sprintf("ChannelOrder(%d)", int(o))
}

// Raw is a frame exactly as a backend produced it
type Raw struct {
	Pix      []byte
	Width    int
	Height   int
	Stride   int
	Order    ChannelOrder
	BottomUp bool
}

// Normalized is a frame in the canonical layout: rows top to bottom,
// pixels stored as blue, green, red, alpha.
type Normalized struct {
	Pix        []byte
	Width      int
	Height     int
	RowLen     int
	PixelWidth int
}

// ErrMalformed is returned when a raw frame's geometry does not match its data
var ErrMalformed = errors.New("malformed raw frame")

// Normalize converts a raw frame into the canonical layout.
// The result never aliases raw.Pix.
func Normalize(raw Raw) (Normalized, error) {
	if err := raw.validate(); err != nil {
		return Normalized{}, err
	}
	rowLen := raw.Width * PixelWidth
	pix := packRows(raw, rowLen)
	if raw.Order == OrderRGBX {
		swapRedBlue(pix)
	}
	forceOpaque(pix)
	return Normalized{
		Pix:        pix,
		Width:      raw.Width,
		Height:     raw.Height,
		RowLen:     rowLen,
		PixelWidth: PixelWidth,
	}, nil
}

func (r Raw) validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrMalformed, r.Width, r.Height)
	}
	if r.Order != OrderBGRX && r.Order != OrderRGBX {
		return fmt.Errorf("%w: unknown channel order %v", ErrMalformed, r.Order)
	}
	if r.Width == 0 || r.Height == 0 {
		return nil
	}
	if r.Stride < r.Width*PixelWidth {
		return fmt.Errorf("%w: stride %d shorter than row of %d pixels", ErrMalformed, r.Stride, r.Width)
	}
	need := r.Stride*(r.Height-1) + r.Width*PixelWidth
	if len(r.Pix) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrMalformed, len(r.Pix), need)
	}
	return nil
}

// packRows copies the visible part of every row, last row first for
// bottom-up sources.
func packRows(raw Raw, rowLen int) []byte {
	pix := make([]byte, raw.Height*rowLen)
	for y := 0; y < raw.Height; y++ {
		srcRow := y
		if raw.BottomUp {
			srcRow = raw.Height - y - 1
		}
		src := raw.Pix[srcRow*raw.Stride : srcRow*raw.Stride+rowLen]
		copy(pix[y*rowLen:(y+1)*rowLen], src)
	}
	return pix
}

func swapRedBlue(pix []byte) {
	for i := 0; i+PixelWidth <= len(pix); i += PixelWidth {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// forceOpaque overwrites alpha, surfaces are not guaranteed to carry it
func forceOpaque(pix []byte) {
	for i := 3; i < len(pix); i += PixelWidth {
		pix[i] = 255
	}
}
