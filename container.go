// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

// Container is the host element the canvas is attached to.
type Container interface {
	// Attach makes c a child of the container.
	Attach(c Canvas)

	// Detach removes c from the container.
	Detach(c Canvas)

	// BoundingSize returns the container's on-screen size.
	BoundingSize() (width, height float64)
}

// SinkAttacher is implemented by containers that also host the frame sink.
type SinkAttacher interface {
	AttachSink(s FrameSink)
	DetachSink(s FrameSink)
}

// StyledContainer is implemented by containers that display the canvas
// with a cursor and visibility style. The window pushes both on every
// modification.
type StyledContainer interface {
	SetCanvasVisible(visible bool)
	SetCursor(cursor string)
}

// Container returns the host element, or nil.
func (w *Window) Container() Container {
	return w.container
}

// SetContainer moves the canvas from the current container to c.
//
// If the canvas reports a parent other than the current container, the
// inconsistency is logged and the move continues.
func (w *Window) SetContainer(c Container) {
	if w.container == c {
		return
	}

	if old := w.container; old != nil {
		if w.canvas != nil {
			if p := w.canvas.Parent(); p != old {
				w.logger().Error("gpuview: detach canvas", "err", ErrContainerMismatch)
			}
			old.Detach(w.canvas)
		}
		if sa, ok := old.(SinkAttacher); ok && w.sink != nil {
			sa.DetachSink(w.sink)
		}
	}

	w.container = c
	if c != nil {
		if w.canvas != nil {
			c.Attach(w.canvas)
		}
		if sa, ok := c.(SinkAttacher); ok && w.sink != nil && w.useBackgroundImage {
			sa.AttachSink(w.sink)
		}
	}
	w.Modified()
}

// ContainerSize returns the container's bounding size, cached until the
// next modification. Without a container it falls back to the window size.
func (w *Window) ContainerSize() (width, height float64) {
	if w.containerSize == nil && w.container != nil {
		cw, ch := w.container.BoundingSize()
		w.containerSize = &[2]float64{cw, ch}
	}
	if w.containerSize != nil {
		return w.containerSize[0], w.containerSize[1]
	}
	return float64(w.width), float64(w.height)
}

// Cursor returns the cursor style shown over the canvas.
func (w *Window) Cursor() string {
	return w.cursor
}

// SetCursor sets the cursor style and marks the window modified.
func (w *Window) SetCursor(cursor string) {
	if w.cursor == cursor {
		return
	}
	w.cursor = cursor
	w.Modified()
}

// CursorVisible reports whether the cursor is shown.
func (w *Window) CursorVisible() bool {
	return w.cursorVisible
}

// SetCursorVisibility shows or hides the cursor.
func (w *Window) SetCursorVisibility(visible bool) {
	if w.cursorVisible == visible {
		return
	}
	w.cursorVisible = visible
	w.Modified()
}

// UseOffScreen reports whether the canvas is hidden.
func (w *Window) UseOffScreen() bool {
	return w.offScreen
}

// SetUseOffScreen hides or shows the canvas.
func (w *Window) SetUseOffScreen(offScreen bool) {
	if w.offScreen == offScreen {
		return
	}
	w.offScreen = offScreen
	w.Modified()
}
