// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import "fmt"

// Vec3 is a three-component coordinate in any of the window's spaces.
// Display-space operations pass Z through untouched.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Array returns the vector as a [3]float64.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// String returns a human-readable representation.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Viewport is a normalized sub-rectangle of the framebuffer,
// laid out as [xmin, ymin, xmax, ymax] with every bound in [0, 1].
type Viewport [4]float64

// FullViewport covers the whole framebuffer.
var FullViewport = Viewport{0, 0, 1, 1}

// Width returns xmax - xmin.
func (v Viewport) Width() float64 { return v[2] - v[0] }

// Height returns ymax - ymin.
func (v Viewport) Height() float64 { return v[3] - v[1] }

// Valid reports whether 0 <= min <= max <= 1 holds on both axes.
func (v Viewport) Valid() bool {
	return 0 <= v[0] && v[0] <= v[2] && v[2] <= 1 &&
		0 <= v[1] && v[1] <= v[3] && v[3] <= 1
}

// Color is an RGBA colour with components in [0, 1].
type Color [4]float64
