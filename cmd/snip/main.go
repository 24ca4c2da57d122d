package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rviscarra/snip"
	"github.com/rviscarra/snip/internal/api"
	"github.com/rviscarra/snip/internal/config"
	"github.com/rviscarra/snip/internal/encoders"
	"github.com/rviscarra/snip/internal/logging"
	"github.com/rviscarra/snip/internal/rdisplay"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "snip: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "snip: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("snip failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	video, err := rdisplay.NewVideoProvider()
	if err != nil {
		return fmt.Errorf("init displays: %w", err)
	}
	if cfg.List {
		return listScreens(os.Stdout, video)
	}

	capturer, err := newCapturer(cfg, logger)
	if err != nil {
		return err
	}
	enc := encoders.NewEncoderService()

	if cfg.HTTP.Port != "" {
		return serve(cfg.HTTP.Port, api.MakeHandler(capturer, video, enc, logger), logger)
	}

	encoder, err := enc.NewEncoder(cfg.Format, encoders.Options{Quality: cfg.Quality})
	if err != nil {
		return err
	}
	shot, err := capturer.Capture(uint(cfg.Display))
	if err != nil {
		return fmt.Errorf("capture display %d: %w", cfg.Display, err)
	}
	logger.Info("captured display",
		"display", cfg.Display,
		"backend", shot.Backend(),
		"width", shot.Width(),
		"height", shot.Height(),
		"bytes", shot.RawLen())

	meta, err := writeScreenshot(cfg.Output, shot, encoder, cfg.MaxWidth)
	if err != nil {
		return err
	}
	meta.Format = encoders.Canonical(cfg.Format)
	logger.Info("wrote screenshot", "path", cfg.Output, "capture_id", meta.CaptureID)
	if cfg.Metadata {
		path, err := writeMetadata(cfg.Output, meta)
		if err != nil {
			return err
		}
		logger.Info("wrote metadata", "path", path)
	}
	return nil
}

func newCapturer(cfg config.Config, logger *slog.Logger) (*snip.Capturer, error) {
	opts := snip.Options{PollInterval: cfg.PollInterval, Logger: logger}
	if cfg.Backend != "" {
		backend, err := rdisplay.Lookup(cfg.Backend)
		if err != nil {
			return nil, err
		}
		opts.Backends = []rdisplay.Backend{backend}
	}
	return snip.NewCapturer(opts), nil
}

func serve(port string, handler http.Handler, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", handler))

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting screenshot server", "port", port)
		serveErr <- http.ListenAndServe(":"+port, mux)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-interrupt:
		logger.Info("exiting", "signal", sig.String())
		return nil
	}
}
