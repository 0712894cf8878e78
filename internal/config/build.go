// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/scene"
)

// Renderable builds the scene renderers described by the configuration.
func (c *Config) Renderable() gpuview.Renderers {
	out := make(gpuview.Renderers, 0, len(c.Renderers))
	for _, r := range c.Renderers {
		out = append(out, r.build())
	}
	return out
}

func (r Renderer) build() *scene.Renderer {
	ren := scene.NewRenderer(
		scene.WithViewport(r.Viewport),
		scene.WithBackground(r.Background),
	)
	if r.Camera == nil {
		return ren
	}

	cam := ren.Camera
	if r.Camera.Position != nil {
		cam.Position = vec(*r.Camera.Position)
	}
	if r.Camera.FocalPoint != nil {
		cam.FocalPoint = vec(*r.Camera.FocalPoint)
	}
	if r.Camera.ViewUp != nil {
		cam.ViewUp = vec(*r.Camera.ViewUp)
	}
	if r.Camera.ViewAngle > 0 {
		cam.ViewAngle = r.Camera.ViewAngle
	}
	if r.Camera.ParallelScale > 0 {
		cam.ParallelScale = r.Camera.ParallelScale
	}
	if r.Camera.Parallel {
		cam.Projection = scene.Parallel
	}
	return ren
}

func vec(a [3]float64) gpuview.Vec3 {
	return gpuview.V3(a[0], a[1], a[2])
}
