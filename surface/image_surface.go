// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrInvalidSize is returned by Resize for non-positive dimensions.
var ErrInvalidSize = errors.New("surface: invalid size")

// ImageSurface is a CPU-based surface backed by an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.FillRect(image.Rect(0, 0, 100, 100), color.RGBA{255, 0, 0, 255})
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Non-positive dimensions are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface draws into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// FillRect fills r, clipped to the surface, with c.
func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	if s.closed {
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawImage draws an image at the specified position.
//
// Without a DstRect the image is composited at its original size. With a
// DstRect of a different size it is scaled with the requested filter.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	if opts == nil {
		opts = DefaultDrawImageOptions()
	}

	sr := img.Bounds()
	if opts.SrcRect != nil {
		sr = opts.SrcRect.Intersect(sr)
	}
	if sr.Empty() {
		return
	}

	op := draw.Over
	if opts.Src {
		op = draw.Src
	}

	var mask image.Image
	if opts.Alpha < 1.0 {
		a := max(opts.Alpha, 0)
		mask = image.NewUniform(color.Alpha{A: uint8(a * 255)}) //nolint:gosec // G115: a in [0, 1)
	}

	dr := sr.Sub(sr.Min).Add(at.ImagePoint())
	if opts.DstRect != nil {
		dr = *opts.DstRect
	}

	if dr.Size() != sr.Size() {
		var scaler draw.Scaler = draw.NearestNeighbor
		if opts.Filter == FilterBilinear {
			scaler = draw.BiLinear
		}
		scaler.Scale(s.img, dr, img, sr, op, &draw.Options{SrcMask: mask})
		return
	}

	if mask != nil {
		draw.DrawMask(s.img, dr, img, sr.Min, mask, image.Point{}, op)
		return
	}
	draw.Draw(s.img, dr, img, sr.Min, op)
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(result, result.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return result
}

// Resize discards the contents and reallocates the surface.
func (s *ImageSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	s.width = width
	s.height = height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.closed = false
	return nil
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Closed reports whether Close has been called.
func (s *ImageSurface) Closed() bool {
	return s.closed
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Ensure ImageSurface implements ResizableSurface.
var _ ResizableSurface = (*ImageSurface)(nil)
