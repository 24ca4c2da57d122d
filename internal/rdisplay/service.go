package rdisplay

import (
	"fmt"
	"image"

	"github.com/rviscarra/snip/internal/frame"
)

// Kind groups backends by how they acquire a frame
type Kind int

const (
	// KindGeneric backends poll and may report ErrWouldBlock
	KindGeneric Kind = iota
	// KindAccelerated backends copy the composed display surface in one call
	KindAccelerated
	// KindLegacy backends blit the screen into a private surface
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindAccelerated:
		return "accelerated"
	case KindLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Backend is one platform mechanism for obtaining a display frame
type Backend interface {
	Name() string
	Kind() Kind
	// Open validates the display index and acquires whatever session
	// resources the backend needs. The returned Source must be closed.
	Open(display int) (Source, error)
}

// Source produces raw frames for one opened display
type Source interface {
	Frame() (frame.Raw, error)
	Close() error
}

// Screen is a display that can be captured
type Screen struct {
	Index  int
	Bounds image.Rectangle
}

// Service lists the displays available for capture
type Service interface {
	Screens() ([]Screen, error)
}

// Backends returns the capture backends for the running platform, primary first
func Backends() []Backend {
	return platformBackends()
}

// Lookup finds a platform backend by name
func Lookup(name string) (Backend, error) {
	for _, b := range platformBackends() {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: no backend named %q", ErrUnsupported, name)
}

// monitor is a display rectangle in virtual-desktop coordinates
type monitor struct {
	left, top     int
	width, height int
}

func pickMonitor(monitors []monitor, display int) (monitor, error) {
	if display < 0 || display >= len(monitors) {
		return monitor{}, displayNotFound(display, len(monitors))
	}
	return monitors[display], nil
}
