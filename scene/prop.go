// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/gpuview"
)

// Prop is a visible object with optional overlay surfaces such as labels.
type Prop struct {
	Name string

	mu       sync.RWMutex
	hidden   bool
	overlays []gpuview.Overlay
}

// NewProp creates a visible prop.
func NewProp(name string) *Prop {
	return &Prop{Name: name}
}

// Visible reports whether the prop is drawn.
func (p *Prop) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.hidden
}

// SetVisible shows or hides the prop.
func (p *Prop) SetVisible(visible bool) {
	p.mu.Lock()
	p.hidden = !visible
	p.mu.Unlock()
}

// Overlays returns a copy of the overlay list.
func (p *Prop) Overlays() []gpuview.Overlay {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.overlays)
}

// AddOverlay attaches an overlay surface.
func (p *Prop) AddOverlay(ov gpuview.Overlay) {
	p.mu.Lock()
	p.overlays = append(p.overlays, ov)
	p.mu.Unlock()
}

// ImageOverlay is an overlay backed by a fixed image placed at Rect.
// When Rect and the image differ in size the image is scaled on capture.
type ImageOverlay struct {
	Rect image.Rectangle
	Img  image.Image
}

// NewImageOverlay places img with its top-left corner at at.
func NewImageOverlay(img image.Image, at image.Point) *ImageOverlay {
	return &ImageOverlay{
		Rect: image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())},
		Img:  img,
	}
}

// Bounds returns the overlay rectangle in client coordinates.
func (o *ImageOverlay) Bounds() image.Rectangle { return o.Rect }

// Image returns the overlay pixels.
func (o *ImageOverlay) Image() image.Image { return o.Img }

var (
	_ gpuview.ViewProp        = (*Prop)(nil)
	_ gpuview.OverlayProvider = (*Prop)(nil)
	_ gpuview.Overlay         = (*ImageOverlay)(nil)
)
