// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/scene"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Width != gpuview.DefaultWidth || cfg.Height != gpuview.DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", cfg.Width, cfg.Height)
	}
	if len(cfg.Renderers) != 1 {
		t.Errorf("len(Renderers) = %d, want 1", len(cfg.Renderers))
	}
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
width: 800
height: 600
format: jpg
frames: 3
output: out.jpg
backend: soft
log_level: debug
renderers:
  - viewport: [0, 0, 0.5, 1]
    background: [1, 0, 0, 1]
  - viewport: [0.5, 0, 1, 1]
    background: [0, 0, 1, 1]
    camera:
      position: [0, 0, 5]
      parallel: true
      parallel_scale: 2
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if got := cfg.ImageFormat(); got != "image/jpeg" {
		t.Errorf("ImageFormat() = %q, want image/jpeg", got)
	}
	if cfg.Frames != 3 || cfg.Backend != "soft" || cfg.LogLevel != "debug" {
		t.Errorf("frames/backend/log_level = %d/%q/%q", cfg.Frames, cfg.Backend, cfg.LogLevel)
	}
	if len(cfg.Renderers) != 2 {
		t.Fatalf("len(Renderers) = %d, want 2", len(cfg.Renderers))
	}
	if want := (gpuview.Viewport{0.5, 0, 1, 1}); cfg.Renderers[1].Viewport != want {
		t.Errorf("Renderers[1].Viewport = %v, want %v", cfg.Renderers[1].Viewport, want)
	}

	rs := cfg.Renderable()
	if len(rs) != 2 {
		t.Fatalf("len(Renderable()) = %d, want 2", len(rs))
	}
	ren, ok := rs[1].(*scene.Renderer)
	if !ok {
		t.Fatalf("Renderable()[1] is %T, want *scene.Renderer", rs[1])
	}
	if ren.Camera.Projection != scene.Parallel || ren.Camera.ParallelScale != 2 {
		t.Errorf("camera = %+v, want parallel scale 2", ren.Camera)
	}
	if ren.Camera.Position != gpuview.V3(0, 0, 5) {
		t.Errorf("camera position = %v, want (0, 0, 5)", ren.Camera.Position)
	}
	if want := (gpuview.Color{0, 0, 1, 1}); *ren.Background() != want {
		t.Errorf("background = %v, want %v", *ren.Background(), want)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{"bad viewport", "renderers:\n  - viewport: [0.6, 0, 0.4, 1]\n    background: [0, 0, 0, 1]\n", "renderers[0].viewport"},
		{"viewport out of range", "renderers:\n  - viewport: [0, 0, 1.2, 1]\n    background: [0, 0, 0, 1]\n", "renderers[0].viewport"},
		{"bad background", "renderers:\n  - viewport: [0, 0, 1, 1]\n    background: [2, 0, 0, 1]\n", "renderers[0].background"},
		{"zero width", "width: 0\n", "size"},
		{"zero frames", "frames: 0\n", "frames"},
		{"bad format", "format: image/webp\n", "format"},
		{"bad log level", "log_level: trace\n", "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse error = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("widht: 10\n"))
	if err == nil {
		t.Fatal("Parse accepted an unknown field")
	}
	if !strings.Contains(err.Error(), "widht") {
		t.Errorf("error = %v, want mention of the unknown field", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("width: 64\nheight: 32\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", cfg.Width, cfg.Height)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}
