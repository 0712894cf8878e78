// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"testing"
)

// TestSurfaceInterface verifies ImageSurface implements the interfaces.
func TestSurfaceInterface(t *testing.T) {
	var _ Surface = (*ImageSurface)(nil)
	var _ ResizableSurface = (*ImageSurface)(nil)
}

// TestDrawImageOptions tests the default options.
func TestDrawImageOptions(t *testing.T) {
	opts := DefaultDrawImageOptions()

	if opts.Alpha != 1.0 {
		t.Errorf("default Alpha = %f, want 1.0", opts.Alpha)
	}
	if opts.Filter != FilterNearest {
		t.Errorf("default Filter = %d, want FilterNearest", opts.Filter)
	}
	if opts.Src {
		t.Error("default Src = true, want false")
	}
	if opts.SrcRect != nil || opts.DstRect != nil {
		t.Error("default rectangles should be nil")
	}
}

// TestPointCreation tests Pt and ImagePoint.
func TestPointCreation(t *testing.T) {
	tests := []struct {
		p    Point
		want image.Point
	}{
		{Pt(10, 20), image.Pt(10, 20)},
		{Pt(1.9, 2.1), image.Pt(1, 2)},
		{Pt(-0.5, -1.5), image.Pt(-1, -2)},
	}
	for _, tt := range tests {
		if got := tt.p.ImagePoint(); got != tt.want {
			t.Errorf("%v.ImagePoint() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
