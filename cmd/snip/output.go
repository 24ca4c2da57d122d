package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rviscarra/snip"
	"github.com/rviscarra/snip/internal/encoders"
	"github.com/rviscarra/snip/internal/rdisplay"
)

// metadata is written next to a screenshot with -metadata
type metadata struct {
	CaptureID  string    `json:"capture_id"`
	CapturedAt time.Time `json:"captured_at"`
	Backend    string    `json:"backend"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Format     string    `json:"format"`
	ImagePath  string    `json:"image_path"`
}

func writeScreenshot(path string, shot *snip.Screenshot, encoder encoders.Encoder, maxWidth int) (metadata, error) {
	capturedAt := time.Now().UTC()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return metadata{}, fmt.Errorf("ensure output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return metadata{}, fmt.Errorf("create %q: %w", path, err)
	}
	img := encoders.Prepare(shot, maxWidth)
	if err := encoder.Encode(f, img); err != nil {
		f.Close()
		return metadata{}, fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return metadata{}, fmt.Errorf("close %q: %w", path, err)
	}
	size := img.Bounds().Size()
	return metadata{
		CaptureID:  uuid.NewString(),
		CapturedAt: capturedAt,
		Backend:    shot.Backend(),
		Width:      size.X,
		Height:     size.Y,
		ImagePath:  filepath.Base(path),
	}, nil
}

func writeMetadata(imagePath string, meta metadata) (string, error) {
	path := strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write metadata %q: %w", path, err)
	}
	return path, nil
}

func listScreens(w io.Writer, video rdisplay.Service) error {
	screens, err := video.Screens()
	if err != nil {
		return fmt.Errorf("list screens: %w", err)
	}
	var backends []string
	for _, b := range rdisplay.Backends() {
		backends = append(backends, fmt.Sprintf("%s (%s)", b.Name(), b.Kind()))
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "X", "Y", "Width", "Height"})
	for _, s := range screens {
		t.AppendRow(table.Row{s.Index, s.Bounds.Min.X, s.Bounds.Min.Y, s.Bounds.Dx(), s.Bounds.Dy()})
	}
	t.AppendFooter(table.Row{"backends", strings.Join(backends, " > ")})
	t.Render()
	return nil
}
