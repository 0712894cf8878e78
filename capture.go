// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpuview/internal/imageenc"
	"github.com/gogpu/gpuview/surface"
)

// errNoSnapshot is returned when the canvas has no pixels to read back.
var errNoSnapshot = errors.New("gpuview: canvas snapshot unavailable")

// Image is an encoded frame delivered to image-ready listeners.
type Image struct {
	// Format is the MIME type of Data, e.g. "image/png".
	Format string

	// Data holds the encoded pixels.
	Data []byte

	// Width and Height are the pixel dimensions of the frame.
	Width, Height int
}

// DataURL returns the image as a base64 data URL.
func (img Image) DataURL() string {
	return imageenc.DataURL(img.Format, img.Data)
}

// Capture is a pending request for the next rendered frame.
//
// A Capture resolves exactly once: with the next image emitted after a
// frame completes, or with ErrCaptureCanceled if Cancel wins the race.
type Capture struct {
	format   string
	window   *Window
	previous bool

	done chan struct{}
	once sync.Once
	img  Image
	err  error

	// mu guards sub, which is assigned after the listener is registered.
	mu  sync.Mutex
	sub Subscription
}

// Format returns the requested image format.
func (c *Capture) Format() string {
	return c.format
}

// Done returns a channel closed when the capture resolves.
func (c *Capture) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the capture resolves or ctx is done.
func (c *Capture) Wait(ctx context.Context) (Image, error) {
	select {
	case <-c.done:
		return c.img, c.err
	case <-ctx.Done():
		return Image{}, ctx.Err()
	}
}

// Cancel abandons the capture. The listener is removed and the capture
// resolves with ErrCaptureCanceled. The window's capture flag is restored
// only when no other capture is outstanding, so cancelling one request
// never drops another. Cancel after resolution is a no-op.
func (c *Capture) Cancel() {
	c.finish(Image{}, ErrCaptureCanceled, true)
}

// fire is the one-shot image-ready listener.
func (c *Capture) fire(img Image) {
	c.finish(img, nil, false)
}

func (c *Capture) finish(img Image, err error, canceled bool) {
	c.once.Do(func() {
		c.mu.Lock()
		sub := c.sub
		c.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}

		w := c.window
		w.mu.Lock()
		w.pendingCaptures--
		if !canceled || w.pendingCaptures == 0 {
			w.notifyCapture = c.previous
		}
		w.mu.Unlock()

		c.img, c.err = img, err
		close(c.done)
	})
}

// CaptureNextImage requests the next rendered frame encoded as format
// (the window default, usually "image/png", when empty).
//
// The request sets the window's capture flag; the next TraverseAllPasses
// composites the canvas with the props' overlays and emits the result to
// every image-ready listener. The flag is shared: overlapping requests
// resolve together on the same frame, encoded in the most recently
// requested format.
//
// CaptureNextImage returns nil without registering a listener if the
// window was deleted.
func (w *Window) CaptureNextImage(format string) *Capture {
	w.mu.Lock()
	if w.deleted {
		w.mu.Unlock()
		return nil
	}
	if format == "" {
		format = w.imageFormat
	}
	w.imageFormat = format
	previous := w.notifyCapture
	w.notifyCapture = true
	w.pendingCaptures++
	w.mu.Unlock()

	c := &Capture{
		format:   format,
		window:   w,
		previous: previous,
		done:     make(chan struct{}),
	}

	c.mu.Lock()
	c.sub = w.imageReady.subscribe(c.fire)
	c.mu.Unlock()

	w.logger().Debug("gpuview: capture requested", "format", format)
	return c
}

// OnImageReady registers a listener for every emitted frame image.
func (w *Window) OnImageReady(fn func(Image)) Subscription {
	return w.imageReady.subscribe(fn)
}

func (w *Window) captureRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notifyCapture
}

// emitCanvasImage composites and encodes the current frame and emits it.
// An encoding failure is logged and nothing is emitted, leaving pending
// captures for a later frame.
func (w *Window) emitCanvasImage() {
	w.mu.Lock()
	format := w.imageFormat
	w.mu.Unlock()

	img, err := w.canvasImage(format)
	if err != nil {
		w.logger().Warn("gpuview: capture failed", "format", format, "err", err)
		return
	}

	w.observer.CaptureResolved(format)
	w.imageReady.emit(img)
}

// canvasImage copies the canvas into a scratch surface, composites the
// overlays of every visible prop at their offset from the canvas, and
// encodes the result.
func (w *Window) canvasImage(format string) (Image, error) {
	if w.canvas == nil {
		return Image{}, ErrNoCanvas
	}
	snap := w.canvas.Snapshot()
	if snap == nil {
		return Image{}, errNoSnapshot
	}

	b := snap.Bounds()
	scratch := surface.NewImageSurface(b.Dx(), b.Dy())
	defer func() { _ = scratch.Close() }()

	scratch.DrawImage(snap, surface.Pt(0, 0), &surface.DrawImageOptions{Alpha: 1, Src: true})

	origin := w.canvas.Bounds().Min
	for _, r := range w.renderers() {
		for _, prop := range r.ViewProps() {
			if !prop.Visible() {
				continue
			}
			op, ok := prop.(OverlayProvider)
			if !ok {
				continue
			}
			for _, ov := range op.Overlays() {
				compositeOverlay(scratch, ov, origin)
			}
		}
	}

	data, err := imageenc.Encode(scratch.Image(), format)
	if err != nil {
		return Image{}, fmt.Errorf("gpuview: encode capture: %w", err)
	}
	return Image{
		Format: format,
		Data:   data,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// compositeOverlay draws ov over s at its offset from origin, scaling the
// overlay pixels to its bounds when their sizes differ.
func compositeOverlay(s *surface.ImageSurface, ov Overlay, origin image.Point) {
	src := ov.Image()
	if src == nil {
		return
	}
	dst := ov.Bounds().Sub(origin)
	opts := surface.DefaultDrawImageOptions()
	if dst.Size() != src.Bounds().Size() {
		opts.DstRect = &dst
		opts.Filter = surface.FilterBilinear
	}
	s.DrawImage(src, surface.Pt(float64(dst.Min.X), float64(dst.Min.Y)), opts)
}
