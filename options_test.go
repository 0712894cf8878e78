// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"testing"
	"time"
)

type countingObserver struct {
	frames   int
	failures int
	captures []string
}

func (o *countingObserver) FrameSubmitted(time.Duration)  { o.frames++ }
func (o *countingObserver) InitializationFailed(error)    { o.failures++ }
func (o *countingObserver) CaptureResolved(format string) { o.captures = append(o.captures, format) }

func TestNewDefault(t *testing.T) {
	w := New()
	defer w.Delete()

	if width, height := w.Size(); width != DefaultWidth || height != DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", width, height, DefaultWidth, DefaultHeight)
	}
	passes := w.RenderPasses()
	if len(passes) != 1 {
		t.Fatalf("len(RenderPasses()) = %d, want 1", len(passes))
	}
	if _, ok := passes[0].(*ForwardPass); !ok {
		t.Errorf("default pass is %T, want *ForwardPass", passes[0])
	}
	if w.ShaderCache() == nil {
		t.Error("ShaderCache() = nil, want default cache")
	}
	if w.Cursor() != DefaultCursor || !w.CursorVisible() {
		t.Errorf("cursor = %q visible=%v, want %q visible", w.Cursor(), w.CursorVisible(), DefaultCursor)
	}
	if w.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", w.State())
	}
	if w.ID().String() == "" {
		t.Error("ID() is empty")
	}
}

func TestNewUniqueIDs(t *testing.T) {
	a, b := New(), New()
	if a.ID() == b.ID() {
		t.Error("two windows share an ID")
	}
}

func TestWithSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"explicit", 800, 600, 800, 600},
		{"zero keeps default", 0, 0, DefaultWidth, DefaultHeight},
		{"negative width", -1, 200, DefaultWidth, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(WithSize(tt.width, tt.height))
			if gotW, gotH := w.Size(); gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestWithRenderPassesEmpty(t *testing.T) {
	w := New(WithRenderPasses())
	if got := len(w.RenderPasses()); got != 0 {
		t.Errorf("len(RenderPasses()) = %d, want 0", got)
	}
}

func TestWithRenderPassesCustom(t *testing.T) {
	var calls int
	p := RenderPassFunc(func(*Window, RenderPass) error { calls++; return nil })
	w := New(WithRenderPasses(p, p))
	if got := len(w.RenderPasses()); got != 2 {
		t.Errorf("len(RenderPasses()) = %d, want 2", got)
	}
}

func TestWithImageFormat(t *testing.T) {
	w := New(WithImageFormat("image/jpeg"))
	if w.imageFormat != "image/jpeg" {
		t.Errorf("imageFormat = %q, want image/jpeg", w.imageFormat)
	}
	w = New(WithImageFormat(""))
	if w.imageFormat != DefaultImageFormat {
		t.Errorf("imageFormat = %q, want %q", w.imageFormat, DefaultImageFormat)
	}
}

func TestWithObserver(t *testing.T) {
	obs := &countingObserver{}
	w := New(WithObserver(obs))
	_ = w.TraverseAllPasses(t.Context())
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestSetRenderPasses(t *testing.T) {
	w := New()
	a := RenderPassFunc(func(*Window, RenderPass) error { return nil })
	w.SetRenderPasses(a)
	w.AddRenderPass(NewForwardPass())

	passes := w.RenderPasses()
	if len(passes) != 2 {
		t.Fatalf("len(RenderPasses()) = %d, want 2", len(passes))
	}
	if _, ok := passes[1].(*ForwardPass); !ok {
		t.Errorf("passes[1] is %T, want *ForwardPass", passes[1])
	}

	// The returned slice is a copy.
	passes[0] = nil
	if w.RenderPasses()[0] == nil {
		t.Error("RenderPasses() exposes internal storage")
	}
}
