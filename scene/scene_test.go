// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/gpuview"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer()
	if r.Viewport() != gpuview.FullViewport {
		t.Errorf("Viewport() = %v, want %v", r.Viewport(), gpuview.FullViewport)
	}
	if *r.Background() != DefaultBackground {
		t.Errorf("Background() = %v, want %v", *r.Background(), DefaultBackground)
	}
	if r.Camera == nil {
		t.Fatal("Camera is nil")
	}
	if r.Camera.Position != gpuview.V3(0, 0, 1) {
		t.Errorf("Camera.Position = %v, want (0, 0, 1)", r.Camera.Position)
	}
}

func TestNewRenderer_Options(t *testing.T) {
	cam := NewCamera()
	vp := gpuview.Viewport{0, 0, 0.5, 1}
	bg := gpuview.Color{0.2, 0.3, 0.4, 1}
	r := NewRenderer(WithViewport(vp), WithBackground(bg), WithCamera(cam))

	if r.Viewport() != vp {
		t.Errorf("Viewport() = %v, want %v", r.Viewport(), vp)
	}
	if *r.Background() != bg {
		t.Errorf("Background() = %v, want %v", *r.Background(), bg)
	}
	if r.Camera != cam {
		t.Error("WithCamera did not install the camera")
	}

	r = NewRenderer(WithViewport(gpuview.Viewport{0.5, 0, 0.2, 1}))
	if r.Viewport() != gpuview.FullViewport {
		t.Errorf("invalid WithViewport changed viewport to %v", r.Viewport())
	}
}

func TestRenderer_SetViewport(t *testing.T) {
	r := NewRenderer()
	if err := r.SetViewport(gpuview.Viewport{0, 0, 1.5, 1}); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("SetViewport(out of range) error = %v, want ErrInvalidViewport", err)
	}
	vp := gpuview.Viewport{0.25, 0.25, 0.75, 0.75}
	if err := r.SetViewport(vp); err != nil {
		t.Fatalf("SetViewport error = %v", err)
	}
	if r.Viewport() != vp {
		t.Errorf("Viewport() = %v, want %v", r.Viewport(), vp)
	}
}

func TestRenderer_BackgroundMutable(t *testing.T) {
	r := NewRenderer()
	r.Background()[3] = 0
	if got := r.Background()[3]; got != 0 {
		t.Errorf("alpha = %v, want 0", got)
	}
}

func TestRenderer_Props(t *testing.T) {
	r := NewRenderer()
	a, b := NewProp("a"), NewProp("b")
	r.AddViewProp(a)
	r.AddViewProp(b)
	r.AddViewProp(a)

	if got := len(r.ViewProps()); got != 2 {
		t.Fatalf("len(ViewProps()) = %d, want 2", got)
	}
	if !r.RemoveViewProp(a) {
		t.Error("RemoveViewProp(a) = false, want true")
	}
	if r.RemoveViewProp(a) {
		t.Error("second RemoveViewProp(a) = true, want false")
	}
	props := r.ViewProps()
	if len(props) != 1 || props[0] != b {
		t.Errorf("ViewProps() = %v, want [b]", props)
	}
}

func TestRenderer_WorldToViewOrigin(t *testing.T) {
	r := NewRenderer()
	got := r.WorldToView(gpuview.V3(0, 0, 0), 1)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("WorldToView(origin) = %v, want x=y=0", got)
	}
	if got.Z < -1 || got.Z > 1 {
		t.Errorf("WorldToView(origin).Z = %v, want in [-1, 1]", got.Z)
	}
}

func TestRenderer_WorldViewRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		projection Projection
		aspect     float64
	}{
		{"perspective", Perspective, 1},
		{"perspective wide", Perspective, 4.0 / 3.0},
		{"parallel", Parallel, 2},
	}
	points := []gpuview.Vec3{
		gpuview.V3(0, 0, 0),
		gpuview.V3(0.1, -0.05, 0.2),
		gpuview.V3(-0.2, 0.15, -0.5),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer()
			r.Camera.Projection = tt.projection
			for _, p := range points {
				back := r.ViewToWorld(r.WorldToView(p, tt.aspect), tt.aspect)
				if diff := cmp.Diff(p, back, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
					t.Errorf("round trip of %v mismatch (-want +got):\n%s", p, diff)
				}
			}
		})
	}
}

func TestRenderer_ParallelProjection(t *testing.T) {
	r := NewRenderer()
	r.Camera.Projection = Parallel
	r.Camera.ParallelScale = 2

	got := r.WorldToView(gpuview.V3(1, 0.5, 0), 1)
	want := gpuview.Vec3{X: 0.5, Y: 0.25, Z: got.Z}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("WorldToView mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_NormalizedDisplay(t *testing.T) {
	r := NewRenderer(WithViewport(gpuview.Viewport{0.5, 0, 1, 0.5}))

	tests := []struct {
		view gpuview.Vec3
		want gpuview.Vec3
	}{
		{gpuview.V3(-1, -1, 0.3), gpuview.V3(0.5, 0, 0.3)},
		{gpuview.V3(1, 1, -0.2), gpuview.V3(1, 0.5, -0.2)},
		{gpuview.V3(0, 0, 0), gpuview.V3(0.75, 0.25, 0)},
	}
	for _, tt := range tests {
		got := r.ViewToNormalizedDisplay(tt.view)
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("ViewToNormalizedDisplay(%v) mismatch (-want +got):\n%s", tt.view, diff)
		}
		back := r.NormalizedDisplayToView(got)
		if diff := cmp.Diff(tt.view, back, approx); diff != "" {
			t.Errorf("NormalizedDisplayToView(%v) mismatch (-want +got):\n%s", got, diff)
		}
	}
}

func TestRenderer_NormalizedDisplayDegenerate(t *testing.T) {
	r := NewRenderer(WithViewport(gpuview.Viewport{0.5, 0.5, 0.5, 1}))
	p := gpuview.V3(0.2, 0.3, 0.4)
	if got := r.NormalizedDisplayToView(p); got != p {
		t.Errorf("NormalizedDisplayToView(%v) = %v, want unchanged", p, got)
	}
}

func TestRenderer_SetWindow(t *testing.T) {
	r := NewRenderer()
	w := gpuview.New(gpuview.WithRenderable(gpuview.Renderers{r}))
	defer w.Delete()

	if r.Window() != nil {
		t.Fatal("Window() before prepass should be nil")
	}
	w.BuildPass(true)
	if r.Window() != w {
		t.Error("BuildPass(true) did not propagate the window")
	}
}

func TestCamera_Zoom(t *testing.T) {
	c := NewCamera()
	c.Zoom(2)
	if c.ViewAngle != DefaultViewAngle/2 {
		t.Errorf("ViewAngle = %v, want %v", c.ViewAngle, DefaultViewAngle/2)
	}
	c.Zoom(0)
	if c.ViewAngle != DefaultViewAngle/2 {
		t.Errorf("Zoom(0) changed ViewAngle to %v", c.ViewAngle)
	}

	c.Projection = Parallel
	c.Zoom(4)
	if c.ParallelScale != DefaultParallelScale/4 {
		t.Errorf("ParallelScale = %v, want %v", c.ParallelScale, DefaultParallelScale/4)
	}
}

func TestCamera_Distance(t *testing.T) {
	c := NewCamera()
	c.Position = gpuview.V3(3, 4, 0)
	if got := c.Distance(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestProp_Visibility(t *testing.T) {
	p := NewProp("label")
	if !p.Visible() {
		t.Error("new prop should be visible")
	}
	p.SetVisible(false)
	if p.Visible() {
		t.Error("SetVisible(false) left prop visible")
	}
}

func TestImageOverlay(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	ov := NewImageOverlay(img, image.Pt(10, 20))
	want := image.Rect(10, 20, 14, 22)
	if ov.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", ov.Bounds(), want)
	}
	if ov.Image() != img {
		t.Error("Image() did not return the source image")
	}

	p := NewProp("p")
	p.AddOverlay(ov)
	if got := len(p.Overlays()); got != 1 {
		t.Errorf("len(Overlays()) = %d, want 1", got)
	}
}
