// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/gpuview"
)

// ErrInvalidViewport is returned by SetViewport for bounds outside [0, 1]
// or with min > max.
var ErrInvalidViewport = errors.New("scene: invalid viewport")

// DefaultBackground is the background colour of a new renderer.
var DefaultBackground = gpuview.Color{0, 0, 0, 1}

// Renderer draws its props into a normalized viewport of a window.
type Renderer struct {
	// Camera is the renderer's eye. It is never nil.
	Camera *Camera

	viewport   gpuview.Viewport
	background gpuview.Color

	mu     sync.RWMutex
	props  []gpuview.ViewProp
	window *gpuview.Window
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithViewport sets the normalized viewport. Invalid viewports are ignored.
func WithViewport(vp gpuview.Viewport) Option {
	return func(r *Renderer) {
		if vp.Valid() {
			r.viewport = vp
		}
	}
}

// WithBackground sets the background colour.
func WithBackground(c gpuview.Color) Option {
	return func(r *Renderer) {
		r.background = c
	}
}

// WithCamera replaces the default camera.
func WithCamera(c *Camera) Option {
	return func(r *Renderer) {
		if c != nil {
			r.Camera = c
		}
	}
}

// NewRenderer creates a renderer covering the full viewport with a black
// background and the default camera.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		Camera:     NewCamera(),
		viewport:   gpuview.FullViewport,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Viewport returns the normalized viewport rectangle.
func (r *Renderer) Viewport() gpuview.Viewport {
	return r.viewport
}

// SetViewport replaces the viewport.
func (r *Renderer) SetViewport(vp gpuview.Viewport) error {
	if !vp.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidViewport, vp)
	}
	r.viewport = vp
	return nil
}

// Background returns the mutable background colour.
func (r *Renderer) Background() *gpuview.Color {
	return &r.background
}

// ViewProps returns a copy of the prop list.
func (r *Renderer) ViewProps() []gpuview.ViewProp {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.props)
}

// AddViewProp appends p unless it is already present.
func (r *Renderer) AddViewProp(p gpuview.ViewProp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.props, p) {
		return
	}
	r.props = append(r.props, p)
}

// RemoveViewProp removes p. Returns false if it was not present.
func (r *Renderer) RemoveViewProp(p gpuview.ViewProp) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.props, p)
	if i < 0 {
		return false
	}
	r.props = slices.Delete(r.props, i, i+1)
	return true
}

// SetWindow records the window the renderer is drawn into.
func (r *Renderer) SetWindow(w *gpuview.Window) {
	r.mu.Lock()
	r.window = w
	r.mu.Unlock()
}

// Window returns the window set by the last prepass, or nil.
func (r *Renderer) Window() *gpuview.Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.window
}

// WorldToView applies the camera's composite matrix and the perspective
// divide.
func (r *Renderer) WorldToView(p gpuview.Vec3, aspect float64) gpuview.Vec3 {
	return apply(r.Camera.CompositeMatrix(aspect), p)
}

// ViewToWorld inverts WorldToView. A singular camera returns p unchanged.
func (r *Renderer) ViewToWorld(p gpuview.Vec3, aspect float64) gpuview.Vec3 {
	var inv mat.Dense
	if err := inv.Inverse(r.Camera.CompositeMatrix(aspect)); err != nil {
		return p
	}
	return apply(&inv, p)
}

// ViewToNormalizedDisplay maps [-1, 1] view coordinates into the viewport.
func (r *Renderer) ViewToNormalizedDisplay(p gpuview.Vec3) gpuview.Vec3 {
	vp := r.viewport
	return gpuview.Vec3{
		X: vp[0] + (p.X+1)*0.5*vp.Width(),
		Y: vp[1] + (p.Y+1)*0.5*vp.Height(),
		Z: p.Z,
	}
}

// NormalizedDisplayToView is the inverse of ViewToNormalizedDisplay.
// A viewport with zero width or height returns p unchanged.
func (r *Renderer) NormalizedDisplayToView(p gpuview.Vec3) gpuview.Vec3 {
	vp := r.viewport
	if vp.Width() == 0 || vp.Height() == 0 {
		return p
	}
	return gpuview.Vec3{
		X: 2*(p.X-vp[0])/vp.Width() - 1,
		Y: 2*(p.Y-vp[1])/vp.Height() - 1,
		Z: p.Z,
	}
}

// apply transforms p as a homogeneous point and divides by w.
func apply(m mat.Matrix, p gpuview.Vec3) gpuview.Vec3 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1}))
	w := out.AtVec(3)
	if w == 0 {
		w = 1
	}
	return gpuview.Vec3{X: out.AtVec(0) / w, Y: out.AtVec(1) / w, Z: out.AtVec(2) / w}
}

var (
	_ gpuview.Renderer    = (*Renderer)(nil)
	_ gpuview.WindowAware = (*Renderer)(nil)
)
