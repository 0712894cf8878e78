// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import "image"

// StreamImage is a frame pushed by a remote view stream.
type StreamImage struct {
	// Image holds the decoded pixels.
	Image image.Image

	// Width and Height are the dimensions the remote side rendered at.
	Width, Height int
}

// ViewStream is a remote renderer whose images substitute local rendering.
type ViewStream interface {
	// OnImageReady registers a listener for images pushed by the stream.
	OnImageReady(fn func(StreamImage)) Subscription

	// SetSize propagates the window size to the remote side.
	SetSize(width, height int)

	// InvalidateCache drops any cached frame so the next render is fresh.
	InvalidateCache()

	// Render asks the remote side to render immediately.
	Render()
}

// FrameSink is the external element that displays a background image
// behind the canvas.
type FrameSink interface {
	// SetBackgroundImage replaces the displayed image.
	SetBackgroundImage(img image.Image)

	// SetBackgroundImageEnabled shows or hides the background image.
	SetBackgroundImageEnabled(enabled bool)
}

// ViewStream returns the bound view stream, or nil.
func (w *Window) ViewStream() ViewStream {
	return w.viewStream
}

// SetViewStream binds a remote view stream, replacing local rendering with
// the images it pushes.
//
// Binding the stream already bound is a no-op and returns false. Otherwise
// the previous subscription is released, and a non-nil stream makes the
// first renderer's background transparent, enables the background image,
// feeds incoming images into the frame sink, receives the window size,
// has its cache invalidated and renders once. The window is then marked
// modified. Returns true when the binding changed.
func (w *Window) SetViewStream(s ViewStream) bool {
	if w.viewStream == s {
		return false
	}
	if w.streamSub != nil {
		w.streamSub.Unsubscribe()
		w.streamSub = nil
	}
	w.viewStream = s
	if s == nil {
		return true
	}

	if rs := w.renderers(); len(rs) > 0 {
		if bg := rs[0].Background(); bg != nil {
			bg[3] = 0
		}
	}
	w.SetUseBackgroundImage(true)
	w.streamSub = s.OnImageReady(func(img StreamImage) {
		w.SetBackgroundImage(img.Image)
	})
	s.SetSize(w.width, w.height)
	s.InvalidateCache()
	s.Render()

	w.logger().Info("gpuview: view stream bound")
	w.Modified()
	return true
}

// UseBackgroundImage reports whether the frame sink is enabled.
func (w *Window) UseBackgroundImage() bool {
	return w.useBackgroundImage
}

// SetUseBackgroundImage enables or disables the frame sink. When enabled
// and a container is set, the sink is attached to it.
func (w *Window) SetUseBackgroundImage(enabled bool) {
	w.useBackgroundImage = enabled
	if w.sink != nil {
		w.sink.SetBackgroundImageEnabled(enabled)
	}
	if sa, ok := w.container.(SinkAttacher); ok && w.sink != nil {
		if enabled {
			sa.AttachSink(w.sink)
		} else {
			sa.DetachSink(w.sink)
		}
	}
}

// SetBackgroundImage forwards img to the frame sink.
func (w *Window) SetBackgroundImage(img image.Image) {
	if w.sink != nil {
		w.sink.SetBackgroundImage(img)
	}
}

// FrameSink returns the background-image sink, or nil.
func (w *Window) FrameSink() FrameSink {
	return w.sink
}
