// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/gpuview"
)

// Projection selects how the camera maps view space to clip space.
type Projection uint8

const (
	// Perspective uses ViewAngle as the vertical field of view.
	Perspective Projection = iota

	// Parallel uses ParallelScale as half the visible height.
	Parallel
)

// Default camera parameters.
const (
	DefaultViewAngle     = 30.0
	DefaultParallelScale = 1.0
	DefaultNear          = 0.01
	DefaultFar           = 1000.01
)

// Camera positions the eye of a renderer.
type Camera struct {
	Position   gpuview.Vec3
	FocalPoint gpuview.Vec3
	ViewUp     gpuview.Vec3

	// ViewAngle is the vertical field of view in degrees.
	ViewAngle float64

	// ParallelScale is half the viewport height in world units.
	ParallelScale float64

	Projection Projection

	// ClippingRange holds the near and far plane distances.
	ClippingRange [2]float64
}

// NewCamera returns a perspective camera at (0, 0, 1) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:      gpuview.V3(0, 0, 1),
		ViewUp:        gpuview.V3(0, 1, 0),
		ViewAngle:     DefaultViewAngle,
		ParallelScale: DefaultParallelScale,
		ClippingRange: [2]float64{DefaultNear, DefaultFar},
	}
}

// Distance returns the distance from the position to the focal point.
func (c *Camera) Distance() float64 {
	return norm(c.FocalPoint.Sub(c.Position))
}

// Zoom narrows the view by factor. Factors above one magnify.
// Non-positive factors are ignored.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	if c.Projection == Parallel {
		c.ParallelScale /= factor
		return
	}
	c.ViewAngle /= factor
}

// ViewMatrix returns the world-to-eye transform.
func (c *Camera) ViewMatrix() *mat.Dense {
	f := normalize(c.FocalPoint.Sub(c.Position))
	s := normalize(cross(f, c.ViewUp))
	u := cross(s, f)
	e := c.Position

	return mat.NewDense(4, 4, []float64{
		s.X, s.Y, s.Z, -dot(s, e),
		u.X, u.Y, u.Z, -dot(u, e),
		-f.X, -f.Y, -f.Z, dot(f, e),
		0, 0, 0, 1,
	})
}

// ProjectionMatrix returns the eye-to-clip transform for a viewport with
// the given aspect ratio (width / height).
func (c *Camera) ProjectionMatrix(aspect float64) *mat.Dense {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	n, f := c.ClippingRange[0], c.ClippingRange[1]

	if c.Projection == Parallel {
		s := c.ParallelScale
		return mat.NewDense(4, 4, []float64{
			1 / (s * aspect), 0, 0, 0,
			0, 1 / s, 0, 0,
			0, 0, -2 / (f - n), -(f + n) / (f - n),
			0, 0, 0, 1,
		})
	}

	t := 1 / math.Tan(c.ViewAngle*math.Pi/360)
	return mat.NewDense(4, 4, []float64{
		t / aspect, 0, 0, 0,
		0, t, 0, 0,
		0, 0, (f + n) / (n - f), 2 * f * n / (n - f),
		0, 0, -1, 0,
	})
}

// CompositeMatrix returns projection * view.
func (c *Camera) CompositeMatrix(aspect float64) *mat.Dense {
	var m mat.Dense
	m.Mul(c.ProjectionMatrix(aspect), c.ViewMatrix())
	return &m
}

func dot(a, b gpuview.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b gpuview.Vec3) gpuview.Vec3 {
	return gpuview.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func norm(v gpuview.Vec3) float64 {
	return math.Sqrt(dot(v, v))
}

func normalize(v gpuview.Vec3) gpuview.Vec3 {
	n := norm(v)
	if n == 0 {
		return v
	}
	return gpuview.Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}
