// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend/soft"
	"github.com/gogpu/gpuview/scene"
)

func TestSetContainer_AttachesCanvas(t *testing.T) {
	w, host := newSoftWindow(t, 4, 4, nil)
	a := soft.NewContainer(10, 10)
	b := soft.NewContainer(20, 20)

	w.SetContainer(a)
	if host.SoftCanvas().Parent() != gpuview.Container(a) {
		t.Error("canvas parent is not the container")
	}
	if len(a.Canvases()) != 1 {
		t.Errorf("container canvases = %d, want 1", len(a.Canvases()))
	}

	w.SetContainer(b)
	if len(a.Canvases()) != 0 {
		t.Error("canvas still attached to the old container")
	}
	if host.SoftCanvas().Parent() != gpuview.Container(b) {
		t.Error("canvas parent is not the new container")
	}
	if w.Container() != gpuview.Container(b) {
		t.Error("Container() does not return the new container")
	}
}

func TestSetContainer_MismatchLogsAndContinues(t *testing.T) {
	orig := gpuview.Logger()
	t.Cleanup(func() { gpuview.SetLogger(orig) })
	var buf bytes.Buffer
	gpuview.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	w, host := newSoftWindow(t, 4, 4, nil)
	a := soft.NewContainer(10, 10)
	stray := soft.NewContainer(10, 10)
	c := soft.NewContainer(10, 10)

	w.SetContainer(a)
	stray.Attach(host.SoftCanvas())

	w.SetContainer(c)

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, gpuview.ErrContainerMismatch.Error()) {
		t.Errorf("mismatch not logged at error level:\n%s", out)
	}
	if host.SoftCanvas().Parent() != gpuview.Container(c) {
		t.Error("canvas was not moved to the new container")
	}
	if w.Container() != gpuview.Container(c) {
		t.Error("Container() does not return the new container")
	}
}

func TestContainerSize_Cached(t *testing.T) {
	w, _ := newSoftWindow(t, 4, 4, nil)
	ct := soft.NewContainer(320, 240)
	w.SetContainer(ct)

	for range 3 {
		if cw, ch := w.ContainerSize(); cw != 320 || ch != 240 {
			t.Fatalf("ContainerSize() = %vx%v, want 320x240", cw, ch)
		}
	}
	if got := ct.Measured(); got != 1 {
		t.Errorf("BoundingSize calls = %d, want 1", got)
	}

	ct.Resize(640, 480)
	if cw, _ := w.ContainerSize(); cw != 320 {
		t.Errorf("ContainerSize() = %v before modification, want cached 320", cw)
	}
	w.Modified()
	if cw, ch := w.ContainerSize(); cw != 640 || ch != 480 {
		t.Errorf("ContainerSize() after Modified = %vx%v, want 640x480", cw, ch)
	}
}

func TestContainerSize_FallsBackToWindow(t *testing.T) {
	w := gpuview.New(gpuview.WithSize(50, 25))
	if cw, ch := w.ContainerSize(); cw != 50 || ch != 25 {
		t.Errorf("ContainerSize() = %vx%v, want 50x25", cw, ch)
	}
}

func TestCursorAndVisibility(t *testing.T) {
	w, _ := newSoftWindow(t, 4, 4, []*scene.Renderer{scene.NewRenderer()})
	ct := soft.NewContainer(10, 10)
	w.SetContainer(ct)

	if got := ct.Cursor(); got != gpuview.DefaultCursor {
		t.Errorf("container cursor = %q, want %q", got, gpuview.DefaultCursor)
	}

	w.SetCursor("crosshair")
	if got := ct.Cursor(); got != "crosshair" {
		t.Errorf("container cursor = %q, want crosshair", got)
	}

	w.SetCursorVisibility(false)
	if got := ct.Cursor(); got != "none" {
		t.Errorf("hidden cursor = %q, want none", got)
	}
	w.SetCursorVisibility(true)
	if got := ct.Cursor(); got != "crosshair" {
		t.Errorf("restored cursor = %q, want crosshair", got)
	}

	w.SetUseOffScreen(true)
	if ct.CanvasVisible() || !w.UseOffScreen() {
		t.Error("off-screen canvas still visible")
	}
	w.SetUseOffScreen(false)
	if !ct.CanvasVisible() {
		t.Error("on-screen canvas hidden")
	}
}

func TestSetters_ModifyOnlyOnChange(t *testing.T) {
	w := gpuview.New()
	var modified int
	w.OnModified(func(*gpuview.Window) { modified++ })

	w.SetCursor(gpuview.DefaultCursor)
	w.SetCursorVisibility(true)
	w.SetUseOffScreen(false)
	if modified != 0 {
		t.Errorf("unchanged setters fired %d modifications, want 0", modified)
	}

	w.SetCursor("move")
	if modified != 1 {
		t.Errorf("modifications = %d, want 1", modified)
	}
}
