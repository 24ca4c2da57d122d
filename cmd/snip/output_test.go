package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rviscarra/snip"
	"github.com/rviscarra/snip/internal/encoders"
	"github.com/rviscarra/snip/internal/frame"
	"github.com/rviscarra/snip/internal/rdisplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grayBackend struct{}

func (grayBackend) Name() string { return "gray" }

func (grayBackend) Kind() rdisplay.Kind { return rdisplay.KindLegacy }

func (grayBackend) Open(int) (rdisplay.Source, error) { return grayBackend{}, nil }

func (grayBackend) Frame() (frame.Raw, error) {
	const w, h = 20, 10
	pix := bytes.Repeat([]byte{128, 128, 128, 0}, w*h)
	return frame.Raw{Pix: pix, Width: w, Height: h, Stride: w * 4, Order: frame.OrderBGRX, BottomUp: true}, nil
}

func (grayBackend) Close() error { return nil }

type stubDisplays []rdisplay.Screen

func (s stubDisplays) Screens() ([]rdisplay.Screen, error) { return s, nil }

func captureGray(t *testing.T) *snip.Screenshot {
	t.Helper()
	shot, err := snip.NewCapturer(snip.Options{Backends: []rdisplay.Backend{grayBackend{}}}).Capture(0)
	require.NoError(t, err)
	return shot
}

func TestWriteScreenshotAndMetadata(t *testing.T) {
	shot := captureGray(t)
	enc, err := encoders.NewEncoderService().NewEncoder(encoders.PNGFormat, encoders.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shots", "screen.png")
	meta, err := writeScreenshot(path, shot, enc, 0)
	require.NoError(t, err)
	assert.Equal(t, "gray", meta.Backend)
	assert.Equal(t, "screen.png", meta.ImagePath)
	assert.NotEmpty(t, meta.CaptureID)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 10), img.Bounds().Size())

	metaPath, err := writeMetadata(path, meta)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "screen.json"), metaPath)
	raw, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, meta.CaptureID, decoded["capture_id"])
	assert.EqualValues(t, 20, decoded["width"])
}

func TestWriteScreenshotScaled(t *testing.T) {
	shot := captureGray(t)
	enc, err := encoders.NewEncoderService().NewEncoder(encoders.BMPFormat, encoders.Options{})
	require.NoError(t, err)

	meta, err := writeScreenshot(filepath.Join(t.TempDir(), "small.bmp"), shot, enc, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, meta.Width)
	assert.Equal(t, 5, meta.Height)
}

func TestListScreens(t *testing.T) {
	var out bytes.Buffer
	err := listScreens(&out, stubDisplays{
		{Index: 0, Bounds: image.Rect(0, 0, 2560, 1440)},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2560")
	assert.Contains(t, out.String(), "1440")
}
