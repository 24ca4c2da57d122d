package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rviscarra/snip"
	"github.com/rviscarra/snip/internal/encoders"
	"github.com/rviscarra/snip/internal/rdisplay"
)

// Capturer takes a screenshot of one display
type Capturer interface {
	Capture(display uint) (*snip.Screenshot, error)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, snip.ErrDisplayNotFound):
		return http.StatusNotFound
	case errors.Is(err, snip.ErrUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

// MakeHandler returns an HTTP handler serving display listings and screenshots
func MakeHandler(capturer Capturer, display rdisplay.Service, enc encoders.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/screens", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		screens, err := display.Screens()
		if err != nil {
			writeError(w, logger, statusFor(err), err)
			return
		}

		screensPayload := make([]screenPayload, len(screens))
		for i, s := range screens {
			screensPayload[i] = screenPayload{
				Index:  s.Index,
				X:      s.Bounds.Min.X,
				Y:      s.Bounds.Min.Y,
				Width:  s.Bounds.Dx(),
				Height: s.Bounds.Dy(),
			}
		}
		payload, err := json.Marshal(screensResponse{
			Screens: screensPayload,
		})
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})

	mux.HandleFunc("/screenshot", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		query := r.URL.Query()

		screen, err := uintParam(query.Get("screen"))
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, errors.New("screen must be a non-negative integer"))
			return
		}
		maxWidth, err := uintParam(query.Get("max_width"))
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, errors.New("max_width must be a non-negative integer"))
			return
		}
		format := query.Get("format")
		if format == "" {
			format = encoders.PNGFormat
		}
		if !enc.Supports(format) {
			writeError(w, logger, http.StatusBadRequest, errors.New("unsupported format "+strconv.Quote(format)))
			return
		}
		encoder, err := enc.NewEncoder(format, encoders.Options{})
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err)
			return
		}

		shot, err := capturer.Capture(screen)
		if err != nil {
			writeError(w, logger, statusFor(err), err)
			return
		}

		var body bytes.Buffer
		if err := encoder.Encode(&body, encoders.Prepare(shot, int(maxWidth))); err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}

		id := uuid.New()
		logger.Info("served screenshot",
			"capture_id", id.String(),
			"screen", screen,
			"backend", shot.Backend(),
			"bytes", body.Len())
		w.Header().Set("Content-Type", encoder.ContentType())
		w.Header().Set("X-Capture-Id", id.String())
		w.Header().Set("X-Capture-Backend", shot.Backend())
		w.Write(body.Bytes())
	})
	return mux
}

func uintParam(value string) (uint, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	return uint(n), err
}
