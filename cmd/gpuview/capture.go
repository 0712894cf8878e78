// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend"
	"github.com/gogpu/gpuview/internal/config"
	"github.com/gogpu/gpuview/metrics"
)

var errCaptureUnresolved = errors.New("capture did not resolve on the last frame")

type captureFlags struct {
	config  string
	width   int
	height  int
	format  string
	frames  int
	output  string
	backend string
}

func newCaptureCmd() *cobra.Command {
	var f captureFlags

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Render frames and write the last one to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.LogLevel = "debug"
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			installLogger(logger)
			defer gpuview.SetLogger(nil)

			start := time.Now()
			img, err := runCapture(cmd.Context(), cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfg.Output, img.Data, 0o644); err != nil { //nolint:gosec // G306: output image is meant to be readable
				return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
			}
			logger.Infof("Wrote %s %dx%d to %s (%s)", img.Format, img.Width, img.Height,
				cfg.Output, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML scene file")
	fl.IntVar(&f.width, "width", 0, "framebuffer width (overrides config)")
	fl.IntVar(&f.height, "height", 0, "framebuffer height (overrides config)")
	fl.StringVarP(&f.format, "format", "f", "", "capture format, e.g. image/png or jpg (overrides config)")
	fl.IntVarP(&f.frames, "frames", "n", 0, "frames to render (overrides config)")
	fl.StringVarP(&f.output, "output", "o", "", "output file (overrides config)")
	fl.StringVarP(&f.backend, "backend", "b", "", "backend name (overrides config)")
	return cmd
}

// load reads the config file, if any, and applies the flags that were set.
func (f *captureFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Height = f.height
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("frames") {
		cfg.Frames = f.frames
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("backend") {
		cfg.Backend = f.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCapture renders cfg.Frames frames on the configured backend and
// returns the image captured from the last one.
func runCapture(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (gpuview.Image, error) {
	b, err := openBackend(cfg.Backend)
	if err != nil {
		return gpuview.Image{}, err
	}
	defer func() { _ = b.Close() }()

	opts := append(backend.Options(b),
		gpuview.WithSize(cfg.Width, cfg.Height),
		gpuview.WithRenderable(cfg.Renderable()),
		gpuview.WithImageFormat(cfg.ImageFormat()),
		gpuview.WithObserver(metrics.New(reg)),
	)
	w := gpuview.New(opts...)
	defer w.Delete()

	var capture *gpuview.Capture
	for i := range cfg.Frames {
		if i == cfg.Frames-1 {
			capture = w.CaptureNextImage(cfg.ImageFormat())
		}
		if err := w.TraverseAllPasses(ctx); err != nil {
			return gpuview.Image{}, err
		}
		if !w.Initialized() {
			if capture != nil {
				capture.Cancel()
			}
			return gpuview.Image{}, w.LastInitError()
		}
	}

	select {
	case <-capture.Done():
		return capture.Wait(ctx)
	default:
		capture.Cancel()
		return gpuview.Image{}, errCaptureUnresolved
	}
}

func openBackend(name string) (backend.Backend, error) {
	if name == "" {
		return backend.Default()
	}
	return backend.Get(name)
}
