// Package snip captures a single frame of a display into a bitmap with one
// pixel layout regardless of the platform capture mechanism.
package snip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rviscarra/snip/internal/frame"
	"github.com/rviscarra/snip/internal/rdisplay"
)

// DefaultPollInterval is how long a polling backend waits between attempts
const DefaultPollInterval = time.Second / 60

// Error kinds returned by Capture, test with errors.Is
var (
	ErrDisplayNotFound    = rdisplay.ErrDisplayNotFound
	ErrBackendUnavailable = rdisplay.ErrBackendUnavailable
	ErrAcquisitionFailed  = rdisplay.ErrAcquisitionFailed
	ErrUnsupported        = rdisplay.ErrUnsupported
)

// Options configure a Capturer
type Options struct {
	// Backends are tried in order. Defaults to the platform backends.
	Backends     []rdisplay.Backend
	PollInterval time.Duration
	Sleeper      func(time.Duration)
	Logger       *slog.Logger
}

// Capturer takes screenshots using an ordered list of backends, falling
// back to the next one when a backend fails
type Capturer struct {
	backends     []rdisplay.Backend
	pollInterval time.Duration
	sleeper      func(time.Duration)
	logger       *slog.Logger
}

// NewCapturer fills in defaults for unset options
func NewCapturer(opts Options) *Capturer {
	backends := opts.Backends
	if backends == nil {
		backends = rdisplay.Backends()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = time.Sleep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Capturer{
		backends:     backends,
		pollInterval: interval,
		sleeper:      sleeper,
		logger:       logger,
	}
}

// ScreenCapture captures the given display (0 is the primary one) with the
// platform's backends
func ScreenCapture(display uint) (*Screenshot, error) {
	return NewCapturer(Options{}).Capture(display)
}

// Capture takes one screenshot of the given display. Polling backends are
// retried until they produce a frame, there is no timeout.
func (c *Capturer) Capture(display uint) (*Screenshot, error) {
	if len(c.backends) == 0 {
		return nil, ErrUnsupported
	}
	var lastErr error
	for i, backend := range c.backends {
		shot, err := c.captureWith(backend, int(display))
		if err == nil {
			return shot, nil
		}
		lastErr = fmt.Errorf("%s: %w", backend.Name(), err)
		if i < len(c.backends)-1 {
			c.logger.Warn("capture backend failed, falling back",
				"backend", backend.Name(),
				"next", c.backends[i+1].Name(),
				"display", display,
				"err", err)
		}
	}
	return nil, lastErr
}

func (c *Capturer) captureWith(backend rdisplay.Backend, display int) (*Screenshot, error) {
	src, err := backend.Open(display)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	raw, err := c.acquire(backend, src)
	if err != nil {
		return nil, err
	}
	norm, err := frame.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisitionFailed, err)
	}
	c.logger.Debug("captured frame",
		"backend", backend.Name(),
		"width", norm.Width,
		"height", norm.Height)
	return &Screenshot{
		data:       norm.Pix,
		height:     norm.Height,
		width:      norm.Width,
		rowLen:     norm.RowLen,
		pixelWidth: norm.PixelWidth,
		backend:    backend.Name(),
	}, nil
}

func (c *Capturer) acquire(backend rdisplay.Backend, src rdisplay.Source) (frame.Raw, error) {
	for attempt := 1; ; attempt++ {
		raw, err := src.Frame()
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, rdisplay.ErrWouldBlock) {
			return frame.Raw{}, err
		}
		if backend.Kind() != rdisplay.KindGeneric {
			return frame.Raw{}, fmt.Errorf("%w: %s backend cannot poll", ErrAcquisitionFailed, backend.Kind())
		}
		c.logger.Debug("frame not ready", "backend", backend.Name(), "attempt", attempt)
		c.sleeper(c.pollInterval)
	}
}
