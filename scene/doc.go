// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene provides a reference [gpuview.Renderer]: a viewport with a
// background colour, a perspective or parallel camera and a list of props.
//
// Camera matrices are 4x4 gonum dense matrices using the OpenGL clip
// convention, so view-space depth lies in [-1, 1].
//
// Example:
//
//	ren := scene.NewRenderer(
//	    scene.WithViewport(gpuview.Viewport{0, 0, 0.5, 1}),
//	    scene.WithBackground(gpuview.Color{0.1, 0.1, 0.2, 1}),
//	)
//	ren.Camera.Position = gpuview.V3(0, 0, 5)
//	w := gpuview.New(gpuview.WithRenderable(gpuview.Renderers{ren}))
package scene
