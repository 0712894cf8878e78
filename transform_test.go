// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestDisplayToNormalizedDisplay(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))

	got := w.DisplayToNormalizedDisplay(gpuview.V3(400, 300, 0))
	if diff := cmp.Diff(gpuview.V3(0.5, 0.5, 0), got, approx); diff != "" {
		t.Errorf("DisplayToNormalizedDisplay mismatch (-want +got):\n%s", diff)
	}

	back := w.NormalizedDisplayToDisplay(got)
	if diff := cmp.Diff(gpuview.V3(400, 300, 0), back, approx); diff != "" {
		t.Errorf("NormalizedDisplayToDisplay mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayToLocalDisplay(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	got := w.DisplayToLocalDisplay(gpuview.V3(10, 0, 0.25))
	if want := gpuview.V3(10, 599, 0.25); got != want {
		t.Errorf("DisplayToLocalDisplay = %v, want %v", got, want)
	}
}

func TestIsInViewport(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	r := scene.NewRenderer(scene.WithViewport(gpuview.Viewport{0.5, 0, 1, 0.5}))

	tests := []struct {
		x, y float64
		want bool
	}{
		{400, 0, true},
		{800, 300, true},
		{600, 150, true},
		{399, 150, false},
		{600, 301, false},
	}
	for _, tt := range tests {
		if got := w.IsInViewport(tt.x, tt.y, r); got != tt.want {
			t.Errorf("IsInViewport(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestViewportSizeAndCenter(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	r := scene.NewRenderer(scene.WithViewport(gpuview.Viewport{0, 0, 0.5, 0.5}))

	vw, vh := w.ViewportSize(r)
	if vw != 400 || vh != 300 {
		t.Errorf("ViewportSize = %vx%v, want 400x300", vw, vh)
	}
	cx, cy := w.ViewportCenter(r)
	if cx != 200 || cy != 150 {
		t.Errorf("ViewportCenter = (%v, %v), want (200, 150)", cx, cy)
	}
}

func TestWorldToDisplay_Origin(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	r := scene.NewRenderer()

	d := w.WorldToDisplay(gpuview.V3(0, 0, 0), r)
	if diff := cmp.Diff(400.0, d.X, approx); diff != "" {
		t.Errorf("display X mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(300.0, d.Y, approx); diff != "" {
		t.Errorf("display Y mismatch (-want +got):\n%s", diff)
	}

	nd := w.DisplayToNormalizedDisplay(gpuview.Vec3{X: d.X, Y: d.Y})
	if diff := cmp.Diff(gpuview.V3(0.5, 0.5, 0), nd, approx); diff != "" {
		t.Errorf("normalized display mismatch (-want +got):\n%s", diff)
	}
}

func TestWorldDisplayRoundTrip(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	renderers := []*scene.Renderer{
		scene.NewRenderer(),
		scene.NewRenderer(scene.WithViewport(gpuview.Viewport{0.5, 0.25, 1, 0.75})),
	}
	points := []gpuview.Vec3{
		gpuview.V3(0, 0, 0),
		gpuview.V3(0.1, 0.05, -0.3),
		gpuview.V3(-0.2, 0.1, 0.4),
	}

	for _, r := range renderers {
		for _, p := range points {
			back := w.DisplayToWorld(w.WorldToDisplay(p, r), r)
			if diff := cmp.Diff(p, back, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("round trip %v in %v mismatch (-want +got):\n%s", p, r.Viewport(), diff)
			}
		}
	}
}

func TestNormalizedDisplayViewportRoundTrip(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	r := scene.NewRenderer(scene.WithViewport(gpuview.Viewport{0.25, 0.5, 0.75, 1}))

	p := gpuview.V3(0.3, 0.6, 0.8)
	vp := w.NormalizedDisplayToViewport(p, r)

	// 0.3*800 - 200 - 0.5 and 0.6*600 - 300 - 0.5
	if diff := cmp.Diff(gpuview.V3(39.5, 59.5, 0.8), vp, approx); diff != "" {
		t.Errorf("NormalizedDisplayToViewport mismatch (-want +got):\n%s", diff)
	}
	back := w.ViewportToNormalizedDisplay(vp, r)
	if diff := cmp.Diff(p, back, approx); diff != "" {
		t.Errorf("ViewportToNormalizedDisplay mismatch (-want +got):\n%s", diff)
	}
}

func TestViewportToNormalizedViewport(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(101, 51))
	r := scene.NewRenderer()

	got := w.ViewportToNormalizedViewport(gpuview.V3(50, 25, 0.5), r)
	if diff := cmp.Diff(gpuview.V3(0.5, 0.5, 0.5), got, approx); diff != "" {
		t.Errorf("ViewportToNormalizedViewport mismatch (-want +got):\n%s", diff)
	}
	back := w.NormalizedViewportToViewport(got)
	if diff := cmp.Diff(gpuview.V3(50, 25, 0.5), back, approx); diff != "" {
		t.Errorf("NormalizedViewportToViewport mismatch (-want +got):\n%s", diff)
	}
}

func TestViewportToNormalizedViewport_Degenerate(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	r := scene.NewRenderer(scene.WithViewport(gpuview.Viewport{0.5, 0, 0.5, 1}))

	p := gpuview.V3(3, 4, 5)
	if got := w.ViewportToNormalizedViewport(p, r); got != p {
		t.Errorf("ViewportToNormalizedViewport = %v, want %v unchanged", got, p)
	}
}

type fixedFramebuffer struct{ w, h int }

func (f fixedFramebuffer) Size() (int, int) { return f.w, f.h }

func TestFramebufferSize_ActiveFramebuffer(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(800, 600))
	w.SetActiveFramebuffer(fixedFramebuffer{256, 128})

	if fw, fh := w.FramebufferSize(); fw != 256 || fh != 128 {
		t.Errorf("FramebufferSize = %dx%d, want 256x128", fw, fh)
	}
	got := w.DisplayToNormalizedDisplay(gpuview.V3(128, 64, 0))
	if diff := cmp.Diff(gpuview.V3(0.5, 0.5, 0), got, approx); diff != "" {
		t.Errorf("DisplayToNormalizedDisplay mismatch (-want +got):\n%s", diff)
	}

	w.SetActiveFramebuffer(nil)
	if fw, fh := w.FramebufferSize(); fw != 800 || fh != 600 {
		t.Errorf("FramebufferSize after reset = %dx%d, want 800x600", fw, fh)
	}
}
