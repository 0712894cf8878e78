// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/gpuview"
)

// Container is an in-memory gpuview.Container. It records what is attached
// to it and the style pushed by the window.
type Container struct {
	mu            sync.Mutex
	width, height float64
	canvases      []gpuview.Canvas
	sinks         []gpuview.FrameSink
	cursor        string
	canvasVisible bool
	measured      int
}

// NewContainer creates a container with the given bounding size.
func NewContainer(width, height float64) *Container {
	return &Container{width: width, height: height, canvasVisible: true}
}

// Attach implements gpuview.Container.
func (ct *Container) Attach(c gpuview.Canvas) {
	ct.mu.Lock()
	ct.canvases = append(ct.canvases, c)
	ct.mu.Unlock()
	if sc, ok := c.(*Canvas); ok {
		sc.setParent(ct)
	}
}

// Detach implements gpuview.Container.
func (ct *Container) Detach(c gpuview.Canvas) {
	ct.mu.Lock()
	ct.canvases = slices.DeleteFunc(ct.canvases, func(x gpuview.Canvas) bool { return x == c })
	ct.mu.Unlock()
	if sc, ok := c.(*Canvas); ok && sc.Parent() == gpuview.Container(ct) {
		sc.setParent(nil)
	}
}

// Canvases returns the attached canvases.
func (ct *Container) Canvases() []gpuview.Canvas {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return slices.Clone(ct.canvases)
}

// AttachSink implements gpuview.SinkAttacher.
func (ct *Container) AttachSink(s gpuview.FrameSink) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if !slices.Contains(ct.sinks, s) {
		ct.sinks = append(ct.sinks, s)
	}
}

// DetachSink implements gpuview.SinkAttacher.
func (ct *Container) DetachSink(s gpuview.FrameSink) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.sinks = slices.DeleteFunc(ct.sinks, func(x gpuview.FrameSink) bool { return x == s })
}

// Sinks returns the attached frame sinks.
func (ct *Container) Sinks() []gpuview.FrameSink {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return slices.Clone(ct.sinks)
}

// BoundingSize implements gpuview.Container.
func (ct *Container) BoundingSize() (width, height float64) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.measured++
	return ct.width, ct.height
}

// Measured returns how many times BoundingSize was called.
func (ct *Container) Measured() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.measured
}

// Resize changes the bounding size reported to the window.
func (ct *Container) Resize(width, height float64) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.width, ct.height = width, height
}

// SetCanvasVisible implements gpuview.StyledContainer.
func (ct *Container) SetCanvasVisible(visible bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.canvasVisible = visible
}

// CanvasVisible reports the visibility pushed by the window.
func (ct *Container) CanvasVisible() bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.canvasVisible
}

// SetCursor implements gpuview.StyledContainer.
func (ct *Container) SetCursor(cursor string) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cursor = cursor
}

// Cursor returns the cursor pushed by the window.
func (ct *Container) Cursor() string {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.cursor
}

// Background is an in-memory gpuview.FrameSink.
type Background struct {
	mu      sync.Mutex
	img     image.Image
	enabled bool
	updates int
}

// SetBackgroundImage implements gpuview.FrameSink.
func (b *Background) SetBackgroundImage(img image.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.img = img
	b.updates++
}

// SetBackgroundImageEnabled implements gpuview.FrameSink.
func (b *Background) SetBackgroundImageEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// Image returns the last image received.
func (b *Background) Image() image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.img
}

// Enabled reports whether the background image is shown.
func (b *Background) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Updates returns how many images were received.
func (b *Background) Updates() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updates
}

var (
	_ gpuview.Container       = (*Container)(nil)
	_ gpuview.SinkAttacher    = (*Container)(nil)
	_ gpuview.StyledContainer = (*Container)(nil)
	_ gpuview.FrameSink       = (*Background)(nil)
)
