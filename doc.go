// Package gpuview implements a WebGPU render window for a retained scene graph.
//
// # Overview
//
// A [Window] owns the GPU capability handles of one on-screen (or off-screen)
// viewport: adapter, device, presentation canvas, depth buffer and shader
// compiler. It drives the per-frame render passes, keeps a named pipeline
// cache, converts coordinates between the spaces used by picking and layout
// code, and captures composited frames on request.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gpuview"
//	    "github.com/gogpu/gpuview/backend/soft"
//	    "github.com/gogpu/gpuview/scene"
//	)
//
//	host := soft.NewHost()
//	ren := scene.NewRenderer()
//
//	w := gpuview.New(
//	    gpuview.WithSize(800, 600),
//	    gpuview.WithHost(host),
//	    gpuview.WithCanvas(host.Canvas()),
//	    gpuview.WithRenderable(gpuview.Renderers{ren}),
//	)
//	defer w.Delete()
//
//	capture := w.CaptureNextImage("image/png")
//	if err := w.TraverseAllPasses(ctx); err != nil {
//	    return err
//	}
//	img, err := capture.Wait(ctx)
//
// # Coordinate Spaces
//
// The transform methods map between:
//   - World: scene coordinates
//   - View: camera clip space in [-1, 1]
//   - Normalized display: [0, 1] across the framebuffer
//   - Display: framebuffer pixels, origin at bottom-left
//   - Local display: framebuffer pixels, origin at top-left
//   - Viewport: pixels relative to a renderer's viewport origin
//   - Normalized viewport: [0, 1] across a renderer's viewport
//
// # Frame Protocol
//
// [Window.TraverseAllPasses] brings the device up on first use, opens one
// command encoder, runs every [RenderPass] in order against it and submits
// exactly one command buffer. Passes never submit on their own.
//
// # Thread Safety
//
// A Window is driven from a single goroutine. Accessors that may be called
// from other goroutines (capture waiters, pipeline lookups, signal
// subscriptions) are internally synchronized. Windows share no state.
package gpuview
