// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/gpuview/shadercache"
)

// ShaderCache memoizes compiled shader modules for the window's pipelines.
// It is bound to its window once, during initialization.
type ShaderCache interface {
	// SetContext binds the cache to the window that owns the compiler.
	SetContext(ctx shadercache.Context)

	// Module returns the SPIR-V words for a WGSL source.
	Module(source string) ([]uint32, error)
}

// Window is a render-window node: the aggregate root owning the GPU
// capabilities, render passes, pipeline cache and capture state of one
// logical viewport.
//
// A Window is created once per viewport with New and destroyed with Delete.
// It is NOT safe to drive frames from several goroutines at once.
type Window struct {
	id uuid.UUID

	// mu guards the fields shared with capture waiters and collaborators
	// on other goroutines.
	mu sync.Mutex

	width, height int

	host        Host
	canvas      Canvas
	renderable  Renderable
	passes      []RenderPass
	observer    Observer
	shaderCache ShaderCache
	sink        FrameSink

	init initializer

	// Capabilities, set once by a successful Initialize.
	adapter     Adapter
	device      Device
	compiler    ShaderCompiler
	surfaceView TextureView
	depth       Texture
	depthView   TextureView

	// encoder is the command-recording session of the frame in progress.
	encoder CommandEncoder

	pipelines pipelineCache

	notifyCapture   bool
	pendingCaptures int
	imageFormat     string
	imageReady      signal[Image]
	modified        signal[*Window]

	activeFramebuffer Framebuffer

	viewStream ViewStream
	streamSub  Subscription

	container          Container
	containerSize      *[2]float64
	cursor             string
	cursorVisible      bool
	offScreen          bool
	useBackgroundImage bool

	deleted bool
}

// New creates a Window with the default forward pass installed.
func New(opts ...Option) *Window {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &Window{
		id:            uuid.New(),
		width:         o.width,
		height:        o.height,
		host:          o.host,
		canvas:        o.canvas,
		renderable:    o.renderable,
		observer:      o.observer,
		shaderCache:   o.shaderCache,
		sink:          o.sink,
		imageFormat:   o.imageFormat,
		cursor:        DefaultCursor,
		cursorVisible: true,
	}
	if w.observer == nil {
		w.observer = nopObserver{}
	}
	if w.shaderCache == nil {
		w.shaderCache = shadercache.New(0)
	}
	if o.passesSet {
		w.passes = append([]RenderPass(nil), o.passes...)
	} else {
		w.passes = []RenderPass{NewForwardPass()}
	}
	w.pipelines.entries = make(map[string]*Pipeline)

	w.modified.subscribe(func(*Window) { w.updateWindow() })
	return w
}

// ID returns the unique window identifier used in log records.
func (w *Window) ID() uuid.UUID {
	return w.id
}

// logger returns the package logger annotated with the window ID.
func (w *Window) logger() *slog.Logger {
	return Logger().With("window", w.id.String())
}

// Size returns the window size in pixels.
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// SetSize resizes the window and marks it modified.
// Non-positive dimensions are ignored. Returns true if the size changed.
func (w *Window) SetSize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if w.width == width && w.height == height {
		return false
	}
	w.width, w.height = width, height
	w.Modified()
	return true
}

// Modified marks the window modified and notifies OnModified listeners.
func (w *Window) Modified() {
	w.modified.emit(w)
}

// OnModified registers a listener called after every modification.
func (w *Window) OnModified(fn func(*Window)) Subscription {
	return w.modified.subscribe(fn)
}

// updateWindow pushes window state to the canvas, the view stream and the
// container, and invalidates the cached container size.
func (w *Window) updateWindow() {
	if w.renderable != nil && w.canvas != nil {
		w.canvas.SetSize(w.width, w.height)
	}
	if w.viewStream != nil {
		w.viewStream.SetSize(w.width, w.height)
	}
	if sc, ok := w.container.(StyledContainer); ok {
		sc.SetCanvasVisible(!w.offScreen)
		cursor := "none"
		if w.cursorVisible {
			cursor = w.cursor
		}
		sc.SetCursor(cursor)
	}
	w.containerSize = nil
}

// Renderable returns the scene-graph object the window draws.
func (w *Window) Renderable() Renderable {
	return w.renderable
}

// SetRenderable replaces the renderable and marks the window modified.
func (w *Window) SetRenderable(r Renderable) {
	w.renderable = r
	w.Modified()
}

// renderers returns the renderable's renderers, or nil.
func (w *Window) renderers() []Renderer {
	if w.renderable == nil {
		return nil
	}
	return w.renderable.Renderers()
}

// BuildPass prepares the window for a frame. On prepass it propagates the
// window to every renderer implementing WindowAware.
func (w *Window) BuildPass(prepass bool) {
	if !prepass || w.renderable == nil {
		return
	}
	for _, r := range w.renderable.Renderers() {
		if wa, ok := r.(WindowAware); ok {
			wa.SetWindow(w)
		}
	}
}

// Canvas returns the presentation canvas.
func (w *Window) Canvas() Canvas {
	return w.canvas
}

// Host returns the capability provider.
func (w *Window) Host() Host {
	return w.host
}

// Adapter returns the adapter capability, or nil before initialization.
func (w *Window) Adapter() Adapter {
	return w.adapter
}

// Device returns the device capability, or nil before initialization.
func (w *Window) Device() Device {
	return w.device
}

// ShaderCompiler returns the shader-compiler capability,
// or nil before initialization.
func (w *Window) ShaderCompiler() ShaderCompiler {
	return w.compiler
}

// ShaderCache returns the cache bound to this window.
func (w *Window) ShaderCache() ShaderCache {
	return w.shaderCache
}

// SurfaceView returns the presentation texture view configured on the canvas.
func (w *Window) SurfaceView() TextureView {
	if w.canvas != nil {
		if v := w.canvas.CurrentView(); v != nil {
			return v
		}
	}
	return w.surfaceView
}

// DepthTexture returns the depth/stencil attachment, or nil before
// initialization.
func (w *Window) DepthTexture() Texture {
	return w.depth
}

// DepthView returns the view of the depth/stencil attachment.
func (w *Window) DepthView() TextureView {
	return w.depthView
}

// CommandEncoder returns the command-recording session of the frame in
// progress. It is nil outside TraverseAllPasses.
func (w *Window) CommandEncoder() CommandEncoder {
	return w.encoder
}

// ActiveFramebuffer returns the off-screen target currently bound, or nil.
func (w *Window) ActiveFramebuffer() Framebuffer {
	return w.activeFramebuffer
}

// SetActiveFramebuffer binds an off-screen target; nil restores the canvas.
// It does not mark the window modified since passes switch targets often.
func (w *Window) SetActiveFramebuffer(fb Framebuffer) {
	w.activeFramebuffer = fb
}

// Deleted reports whether Delete has been called.
func (w *Window) Deleted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deleted
}

// Delete tears the window down: unbinds the view stream, releases the depth
// attachment and drops every pipeline. Delete is idempotent.
func (w *Window) Delete() {
	w.mu.Lock()
	if w.deleted {
		w.mu.Unlock()
		return
	}
	w.deleted = true
	w.mu.Unlock()

	w.SetViewStream(nil)

	if w.depthView != nil {
		w.depthView.Destroy()
		w.depthView = nil
	}
	if w.depth != nil {
		w.depth.Destroy()
		w.depth = nil
	}
	w.pipelines.clear()
	w.logger().Debug("gpuview: window deleted")
}
