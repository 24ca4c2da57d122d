//go:build windows

package rdisplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateMonitorsReusesCallback(t *testing.T) {
	callback := enumMonitorsCallback
	first := enumerateMonitors()
	// more enumerations than the runtime has callback slots
	for i := 0; i < 2500; i++ {
		assert.Equal(t, len(first), len(enumerateMonitors()))
	}
	assert.Equal(t, callback, enumMonitorsCallback)
}

func TestGDIBackendRejectsOutOfRange(t *testing.T) {
	if testing.Short() {
		t.Skip("queries the display server")
	}
	_, err := gdiBackend{}.Open(1 << 20)
	assert.ErrorIs(t, err, ErrDisplayNotFound)
	_, err = gdiBackend{}.Open(-1)
	assert.ErrorIs(t, err, ErrDisplayNotFound)
}
