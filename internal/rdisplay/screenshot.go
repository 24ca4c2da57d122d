//go:build windows || darwin || linux || freebsd || netbsd || openbsd

package rdisplay

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/rviscarra/snip/internal/frame"
)

// XVideoProvider implements the rdisplay.Service interface on top of
// the portable screenshot library
type XVideoProvider struct{}

// Screens Returns the available screens to capture
func (x *XVideoProvider) Screens() ([]Screen, error) {
	numScreens := screenshot.NumActiveDisplays()
	screens := make([]Screen, numScreens)
	for i := 0; i < numScreens; i++ {
		screens[i] = Screen{
			Index:  i,
			Bounds: screenshot.GetDisplayBounds(i),
		}
	}
	return screens, nil
}

// NewVideoProvider returns a screenshot-based display service
func NewVideoProvider() (Service, error) {
	return &XVideoProvider{}, nil
}

// genericBackend is the cross-platform capturer. It is a polling backend:
// while a display is between modes it reports ErrWouldBlock.
type genericBackend struct{}

func (genericBackend) Name() string { return "screenshot" }

func (genericBackend) Kind() Kind { return KindGeneric }

func (genericBackend) Open(display int) (Source, error) {
	count := screenshot.NumActiveDisplays()
	if display < 0 || display >= count {
		return nil, displayNotFound(display, count)
	}
	return &genericSource{display: display}, nil
}

type genericSource struct {
	display int
}

func (s *genericSource) Frame() (frame.Raw, error) {
	bounds := screenshot.GetDisplayBounds(s.display)
	if bounds.Empty() {
		return frame.Raw{}, ErrWouldBlock
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return frame.Raw{}, fmt.Errorf("%w: %v", ErrAcquisitionFailed, err)
	}
	if img.Bounds().Size() != bounds.Size() {
		return frame.Raw{}, ErrWouldBlock
	}
	return rawFromRGBA(img), nil
}

func (s *genericSource) Close() error {
	return nil
}

func rawFromRGBA(img *image.RGBA) frame.Raw {
	size := img.Bounds().Size()
	return frame.Raw{
		Pix:    img.Pix,
		Width:  size.X,
		Height: size.Y,
		Stride: img.Stride,
		Order:  frame.OrderRGBX,
	}
}
