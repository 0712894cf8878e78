// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the YAML scene description used by the gpuview CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/internal/imageenc"
)

// Config describes one off-screen capture run.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Format is the capture MIME type, or a bare extension such as "jpg".
	Format string `yaml:"format"`

	// Frames is the number of frames rendered; the capture resolves on the
	// last one.
	Frames int `yaml:"frames"`

	// Output is the path the captured image is written to.
	Output string `yaml:"output"`

	// Backend names a registered backend. Empty selects the default.
	Backend string `yaml:"backend"`

	LogLevel string `yaml:"log_level"`

	Renderers []Renderer `yaml:"renderers"`
}

// Renderer describes one scene renderer.
type Renderer struct {
	Viewport   gpuview.Viewport `yaml:"viewport"`
	Background gpuview.Color    `yaml:"background"`
	Camera     *Camera          `yaml:"camera,omitempty"`
}

// Camera overrides the renderer's default camera.
type Camera struct {
	Position      *[3]float64 `yaml:"position,omitempty"`
	FocalPoint    *[3]float64 `yaml:"focal_point,omitempty"`
	ViewUp        *[3]float64 `yaml:"view_up,omitempty"`
	ViewAngle     float64     `yaml:"view_angle,omitempty"`
	Parallel      bool        `yaml:"parallel,omitempty"`
	ParallelScale float64     `yaml:"parallel_scale,omitempty"`
}

// ValidationError reports an invalid field by its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// Default returns a single full-window renderer on a 300x300 PNG capture.
func Default() *Config {
	return &Config{
		Width:    gpuview.DefaultWidth,
		Height:   gpuview.DefaultHeight,
		Format:   gpuview.DefaultImageFormat,
		Frames:   1,
		Output:   "frame.png",
		LogLevel: "info",
		Renderers: []Renderer{{
			Viewport:   gpuview.FullViewport,
			Background: gpuview.Color{0, 0, 0, 1},
		}},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		// Renderers listed in the document replace the default one.
		cfg.Renderers = nil
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if len(cfg.Renderers) == 0 {
			cfg.Renderers = Default().Renderers
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sizes, the capture format, log level and every
// renderer's viewport.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("size", "width and height must be positive")
	}
	if c.Frames < 1 {
		return invalid("frames", "frames must be >= 1")
	}
	if _, err := imageenc.Normalize(c.Format); err != nil {
		return &ValidationError{Path: "format", Err: fmt.Errorf("%w: %w", ErrInvalid, err)}
	}
	if c.Output == "" {
		return invalid("output", "output is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log_level", "log_level must be one of: debug, info, warn, error")
	}
	for i, r := range c.Renderers {
		path := fmt.Sprintf("renderers[%d]", i)
		if !r.Viewport.Valid() {
			return invalid(path+".viewport", fmt.Sprintf("viewport %v must satisfy 0 <= min <= max <= 1", r.Viewport))
		}
		for _, v := range r.Background {
			if v < 0 || v > 1 {
				return invalid(path+".background", "background components must be in [0, 1]")
			}
		}
		if r.Camera != nil {
			if r.Camera.ViewAngle < 0 || r.Camera.ViewAngle >= 180 {
				return invalid(path+".camera.view_angle", "view_angle must be in [0, 180)")
			}
			if r.Camera.ParallelScale < 0 {
				return invalid(path+".camera.parallel_scale", "parallel_scale must be >= 0")
			}
		}
	}
	return nil
}

// ImageFormat returns the canonical capture MIME type.
func (c *Config) ImageFormat() string {
	f, err := imageenc.Normalize(c.Format)
	if err != nil {
		return gpuview.DefaultImageFormat
	}
	return f
}

func invalid(path, msg string) error {
	return &ValidationError{Path: path, Err: fmt.Errorf("%w: %s", ErrInvalid, msg)}
}
