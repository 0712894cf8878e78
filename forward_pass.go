// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ForwardPipelineName is the pipeline-cache key used by ForwardPass.
const ForwardPipelineName = "forward"

// errNoEncoder is returned by passes traversed outside a frame.
var errNoEncoder = errors.New("gpuview: no command encoder; traverse from TraverseAllPasses")

// ForwardPass is the default render pass: one render pass per renderer,
// cleared to the renderer's background within its viewport, with the
// "forward" pipeline bound. Child passes run after every renderer with the
// forward pass as their parent.
type ForwardPass struct {
	// Children are traversed after the renderers, in order.
	Children []RenderPass
}

// NewForwardPass creates a forward pass without children.
func NewForwardPass() *ForwardPass {
	return &ForwardPass{}
}

// Traverse records the forward pass into w's command encoder.
func (f *ForwardPass) Traverse(w *Window, _ RenderPass) error {
	enc := w.CommandEncoder()
	if enc == nil {
		return errNoEncoder
	}

	pipeline := w.Pipeline(ForwardPipelineName)
	fw, fh := w.framebufferSizeF()

	for i, r := range w.renderers() {
		desc := &RenderPassDescriptor{
			Label: fmt.Sprintf("forward_%d", i),
			ColorAttachments: []ColorAttachment{{
				View:       w.SurfaceView(),
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: toGPUColor(*r.Background()),
			}},
			DepthStencilAttachment: &DepthStencilAttachment{
				View:            w.DepthView(),
				DepthLoadOp:     gputypes.LoadOpClear,
				DepthStoreOp:    gputypes.StoreOpStore,
				DepthClearValue: 1.0,
				StencilLoadOp:   gputypes.LoadOpClear,
				StencilStoreOp:  gputypes.StoreOpStore,
			},
		}

		rp, err := enc.BeginRenderPass(desc)
		if err != nil {
			return fmt.Errorf("begin render pass: %w", err)
		}

		// WebGPU viewports have a top-left origin.
		vp := r.Viewport()
		rp.SetViewport(
			float32(vp[0]*fw),
			float32((1-vp[3])*fh),
			float32(vp.Width()*fw),
			float32(vp.Height()*fh),
		)
		rp.SetPipeline(pipeline)

		if err := rp.End(); err != nil {
			return fmt.Errorf("end render pass: %w", err)
		}
	}

	for _, child := range f.Children {
		if err := child.Traverse(w, f); err != nil {
			return err
		}
	}
	return nil
}

func toGPUColor(c Color) gputypes.Color {
	return gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
