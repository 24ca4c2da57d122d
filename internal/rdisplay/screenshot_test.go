//go:build windows || darwin || linux || freebsd || netbsd || openbsd

package rdisplay

import (
	"image"
	"testing"

	"github.com/rviscarra/snip/internal/frame"
	"github.com/stretchr/testify/assert"
)

func TestRawFromRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	raw := rawFromRGBA(img)
	assert.Equal(t, 3, raw.Width)
	assert.Equal(t, 2, raw.Height)
	assert.Equal(t, img.Stride, raw.Stride)
	assert.Equal(t, frame.OrderRGBX, raw.Order)
	assert.False(t, raw.BottomUp)
}

func TestGenericBackendRejectsOutOfRange(t *testing.T) {
	if testing.Short() {
		t.Skip("queries the display server")
	}
	_, err := genericBackend{}.Open(1 << 20)
	assert.ErrorIs(t, err, ErrDisplayNotFound)
	_, err = genericBackend{}.Open(-1)
	assert.ErrorIs(t, err, ErrDisplayNotFound)
}
