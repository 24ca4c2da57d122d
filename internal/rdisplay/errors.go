package rdisplay

import (
	"errors"
	"fmt"
)

var (
	// ErrDisplayNotFound the requested index has no display
	ErrDisplayNotFound = errors.New("display not found")
	// ErrBackendUnavailable a capture session could not be opened
	ErrBackendUnavailable = errors.New("capture backend unavailable")
	// ErrAcquisitionFailed surface creation, blit or readback failed
	ErrAcquisitionFailed = errors.New("frame acquisition failed")
	// ErrUnsupported no backend is implemented for this platform
	ErrUnsupported = errors.New("screen capture not supported")
	// ErrWouldBlock no frame is ready yet, retry later
	ErrWouldBlock = errors.New("frame not ready")
)

func displayNotFound(display, count int) error {
	return fmt.Errorf("%w: index %d (have %d)", ErrDisplayNotFound, display, count)
}
