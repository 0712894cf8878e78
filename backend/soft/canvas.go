// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/surface"
)

// Canvas errors.
var (
	// ErrForeignDevice is returned when the canvas is configured with a
	// device of another backend.
	ErrForeignDevice = errors.New("soft: canvas requires a soft device")

	// ErrUnsupportedFormat is returned for non-8-bit colour formats.
	ErrUnsupportedFormat = errors.New("soft: unsupported surface format")
)

// Canvas is a gpuview.Canvas that presents into an *image.RGBA.
//
// Canvas is safe for concurrent use; Snapshot may be called while a frame
// is being submitted on another goroutine.
type Canvas struct {
	mu     sync.Mutex
	surf   *surface.ImageSurface
	origin image.Point
	parent gpuview.Container
	format gputypes.TextureFormat
	view   *canvasView
}

// NewCanvas creates an unconfigured 1x1 canvas.
func NewCanvas() *Canvas {
	return &Canvas{surf: surface.NewImageSurface(1, 1)}
}

type canvasView struct {
	canvas *Canvas
}

func (*canvasView) Destroy() {}

// Configure implements gpuview.Canvas.
func (c *Canvas) Configure(dev gpuview.Device, format gputypes.TextureFormat) (gpuview.TextureView, error) {
	if _, ok := dev.(*Device); !ok {
		return nil, ErrForeignDevice
	}
	switch format {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.format = format
	if c.view == nil {
		c.view = &canvasView{canvas: c}
	}
	return c.view, nil
}

// Format returns the configured surface format.
func (c *Canvas) Format() gputypes.TextureFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// Configured reports whether Configure succeeded.
func (c *Canvas) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view != nil
}

// CurrentView implements gpuview.Canvas.
func (c *Canvas) CurrentView() gpuview.TextureView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return nil
	}
	return c.view
}

// SetSize implements gpuview.Canvas. Resizing discards the contents.
func (c *Canvas) SetSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	width, height = max(width, 1), max(height, 1)
	if width == c.surf.Width() && height == c.surf.Height() {
		return
	}
	// Resize only fails for non-positive sizes, excluded by the clamp.
	_ = c.surf.Resize(width, height)
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surf.Width(), c.surf.Height()
}

// SetOrigin moves the canvas in client coordinates.
func (c *Canvas) SetOrigin(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = image.Pt(x, y)
}

// Bounds implements gpuview.Canvas.
func (c *Canvas) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Rectangle{
		Min: c.origin,
		Max: c.origin.Add(image.Pt(c.surf.Width(), c.surf.Height())),
	}
}

// Snapshot implements gpuview.Canvas.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surf.Snapshot()
}

// At returns the pixel at (x, y) in canvas coordinates.
func (c *Canvas) At(x, y int) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surf.Image().RGBAAt(x, y)
}

// Parent implements gpuview.Canvas.
func (c *Canvas) Parent() gpuview.Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parent
}

func (c *Canvas) setParent(p gpuview.Container) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parent = p
}

func (c *Canvas) fullRect() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Rect(0, 0, c.surf.Width(), c.surf.Height())
}

func (c *Canvas) fill(r image.Rectangle, col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surf.FillRect(r, col)
}

var _ gpuview.Canvas = (*Canvas)(nil)
