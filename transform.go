// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

// pixelCenter is the offset between a viewport-local pixel index and its
// center in display space.
const pixelCenter = 0.5

// FramebufferSize returns the size of the buffer currently receiving
// output: the active framebuffer if one is bound, else the window size.
func (w *Window) FramebufferSize() (width, height int) {
	if w.activeFramebuffer != nil {
		return w.activeFramebuffer.Size()
	}
	return w.width, w.height
}

func (w *Window) framebufferSizeF() (float64, float64) {
	fw, fh := w.FramebufferSize()
	return float64(fw), float64(fh)
}

// IsInViewport reports whether display point (x, y) lies inside the
// renderer's viewport. Bounds are inclusive.
func (w *Window) IsInViewport(x, y float64, r Renderer) bool {
	vp := r.Viewport()
	fw, fh := w.framebufferSizeF()
	return vp[0]*fw <= x && vp[2]*fw >= x &&
		vp[1]*fh <= y && vp[3]*fh >= y
}

// ViewportSize returns the renderer's viewport size in framebuffer pixels.
func (w *Window) ViewportSize(r Renderer) (width, height float64) {
	vp := r.Viewport()
	fw, fh := w.framebufferSizeF()
	return vp.Width() * fw, vp.Height() * fh
}

// ViewportCenter returns the center of the renderer's viewport relative to
// the viewport origin.
func (w *Window) ViewportCenter(r Renderer) (x, y float64) {
	vw, vh := w.ViewportSize(r)
	return vw * 0.5, vh * 0.5
}

// aspect returns the viewport aspect ratio.
func (w *Window) aspect(r Renderer) float64 {
	vw, vh := w.ViewportSize(r)
	return vw / vh
}

// DisplayToNormalizedDisplay maps framebuffer pixels to [0, 1].
func (w *Window) DisplayToNormalizedDisplay(p Vec3) Vec3 {
	fw, fh := w.framebufferSizeF()
	return Vec3{X: p.X / fw, Y: p.Y / fh, Z: p.Z}
}

// NormalizedDisplayToDisplay maps [0, 1] to framebuffer pixels.
func (w *Window) NormalizedDisplayToDisplay(p Vec3) Vec3 {
	fw, fh := w.framebufferSizeF()
	return Vec3{X: p.X * fw, Y: p.Y * fh, Z: p.Z}
}

// WorldToView maps world coordinates to the renderer's view space.
func (w *Window) WorldToView(p Vec3, r Renderer) Vec3 {
	return r.WorldToView(p, w.aspect(r))
}

// ViewToWorld maps the renderer's view space to world coordinates.
func (w *Window) ViewToWorld(p Vec3, r Renderer) Vec3 {
	return r.ViewToWorld(p, w.aspect(r))
}

// WorldToDisplay maps world coordinates to framebuffer pixels.
func (w *Window) WorldToDisplay(p Vec3, r Renderer) Vec3 {
	view := w.WorldToView(p, r)
	nd := r.ViewToNormalizedDisplay(view)
	return w.NormalizedDisplayToDisplay(nd)
}

// DisplayToWorld is the inverse of WorldToDisplay.
func (w *Window) DisplayToWorld(p Vec3, r Renderer) Vec3 {
	nd := w.DisplayToNormalizedDisplay(p)
	view := r.NormalizedDisplayToView(nd)
	return w.ViewToWorld(view, r)
}

// viewportOrigin returns the renderer's viewport origin in display pixels.
func (w *Window) viewportOrigin(r Renderer) Vec3 {
	vp := r.Viewport()
	return w.NormalizedDisplayToDisplay(Vec3{X: vp[0], Y: vp[1]})
}

// NormalizedDisplayToViewport maps normalized display coordinates to pixel
// coordinates relative to the renderer's viewport origin.
func (w *Window) NormalizedDisplayToViewport(p Vec3, r Renderer) Vec3 {
	origin := w.viewportOrigin(r)
	d := w.NormalizedDisplayToDisplay(p)
	return Vec3{
		X: d.X - origin.X - pixelCenter,
		Y: d.Y - origin.Y - pixelCenter,
		Z: p.Z,
	}
}

// ViewportToNormalizedDisplay is the inverse of NormalizedDisplayToViewport.
func (w *Window) ViewportToNormalizedDisplay(p Vec3, r Renderer) Vec3 {
	origin := w.viewportOrigin(r)
	return w.DisplayToNormalizedDisplay(Vec3{
		X: p.X + origin.X + pixelCenter,
		Y: p.Y + origin.Y + pixelCenter,
		Z: p.Z,
	})
}

// ViewportToNormalizedViewport maps viewport pixels to [0, 1] across the
// viewport. A viewport with zero width or height returns p unchanged.
func (w *Window) ViewportToNormalizedViewport(p Vec3, r Renderer) Vec3 {
	vw, vh := w.ViewportSize(r)
	if vw == 0 || vh == 0 {
		return p
	}
	return Vec3{X: p.X / (vw - 1), Y: p.Y / (vh - 1), Z: p.Z}
}

// NormalizedViewportToViewport scales normalized coordinates by the
// framebuffer size minus one pixel.
func (w *Window) NormalizedViewportToViewport(p Vec3) Vec3 {
	fw, fh := w.framebufferSizeF()
	return Vec3{X: p.X * (fw - 1), Y: p.Y * (fh - 1), Z: p.Z}
}

// DisplayToLocalDisplay flips Y so the origin moves to the top-left corner.
func (w *Window) DisplayToLocalDisplay(p Vec3) Vec3 {
	_, fh := w.framebufferSizeF()
	return Vec3{X: p.X, Y: fh - p.Y - 1, Z: p.Z}
}
