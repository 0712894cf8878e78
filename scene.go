// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import "image"

// Renderer draws a scene into a normalized viewport of the window.
// It owns its viewport and camera; the window only references it.
type Renderer interface {
	// Viewport returns the normalized viewport rectangle.
	Viewport() Viewport

	// WorldToView maps world coordinates to view (clip) coordinates
	// for the given viewport aspect ratio.
	WorldToView(p Vec3, aspect float64) Vec3

	// ViewToWorld is the inverse of WorldToView.
	ViewToWorld(p Vec3, aspect float64) Vec3

	// ViewToNormalizedDisplay maps view coordinates into the renderer's
	// viewport in normalized display space.
	ViewToNormalizedDisplay(p Vec3) Vec3

	// NormalizedDisplayToView is the inverse of ViewToNormalizedDisplay.
	NormalizedDisplayToView(p Vec3) Vec3

	// Background returns the mutable background colour.
	Background() *Color

	// ViewProps returns the props rendered by this renderer.
	ViewProps() []ViewProp
}

// Renderable is the scene-graph object the window is a view of.
type Renderable interface {
	Renderers() []Renderer
}

// Renderers is a Renderable backed by a fixed slice.
type Renderers []Renderer

// Renderers returns the slice itself.
func (r Renderers) Renderers() []Renderer { return r }

// WindowAware is implemented by renderers that need a back-reference to the
// window they are drawn into. BuildPass calls SetWindow on every prepass.
type WindowAware interface {
	SetWindow(w *Window)
}

// ViewProp is a prop drawn by a renderer.
type ViewProp interface {
	Visible() bool
}

// OverlayProvider is implemented by props that render into nested surfaces
// laid over the main canvas (labels, widgets). Capture composites them.
type OverlayProvider interface {
	Overlays() []Overlay
}

// Overlay is a nested drawing surface owned by a prop.
type Overlay interface {
	// Bounds returns the overlay rectangle in the same client coordinates
	// as Canvas.Bounds.
	Bounds() image.Rectangle

	// Image returns the overlay pixels.
	Image() image.Image
}

// RenderPass is one unit of per-frame GPU work.
//
// Traverse records into w.CommandEncoder(). Passes may recurse into child
// passes, passing themselves as parent, but must never submit on their own.
type RenderPass interface {
	Traverse(w *Window, parent RenderPass) error
}

// RenderPassFunc adapts a function to the RenderPass interface.
type RenderPassFunc func(w *Window, parent RenderPass) error

// Traverse calls f(w, parent).
func (f RenderPassFunc) Traverse(w *Window, parent RenderPass) error { return f(w, parent) }
