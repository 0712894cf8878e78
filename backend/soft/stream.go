// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"image/color"
	"sync"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/surface"
)

// Stream is a loopback gpuview.ViewStream. Render paints the stream's
// fill colour at the last size it was given and pushes the image to its
// listeners synchronously, the way a remote renderer would push frames.
type Stream struct {
	mu            sync.Mutex
	fill          color.Color
	width, height int
	next          int
	listeners     map[int]func(gpuview.StreamImage)

	renders       int
	invalidations int
}

// NewStream creates a stream that renders solid fill frames.
func NewStream(fill color.Color) *Stream {
	return &Stream{
		fill:      fill,
		width:     1,
		height:    1,
		listeners: make(map[int]func(gpuview.StreamImage)),
	}
}

// OnImageReady implements gpuview.ViewStream.
func (s *Stream) OnImageReady(fn func(gpuview.StreamImage)) gpuview.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.listeners[id] = fn
	return gpuview.SubscriptionFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	})
}

// Listeners returns the number of registered listeners.
func (s *Stream) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// SetSize implements gpuview.ViewStream.
func (s *Stream) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = max(width, 1), max(height, 1)
}

// Size returns the last size received.
func (s *Stream) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// InvalidateCache implements gpuview.ViewStream.
func (s *Stream) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidations++
}

// Invalidations returns how many times InvalidateCache was called.
func (s *Stream) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidations
}

// Render implements gpuview.ViewStream.
func (s *Stream) Render() {
	s.mu.Lock()
	s.renders++
	w, h := s.width, s.height
	fill := s.fill
	fns := make([]func(gpuview.StreamImage), 0, len(s.listeners))
	for id := 1; id <= s.next; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	surf := surface.NewImageSurface(w, h)
	surf.Clear(fill)
	img := gpuview.StreamImage{Image: surf.Image(), Width: w, Height: h}
	for _, fn := range fns {
		fn(img)
	}
}

// Renders returns how many times Render was called.
func (s *Stream) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

var _ gpuview.ViewStream = (*Stream)(nil)
