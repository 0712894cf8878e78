// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"context"
	"fmt"
	"time"
)

// RenderPasses returns a copy of the ordered pass list.
func (w *Window) RenderPasses() []RenderPass {
	return append([]RenderPass(nil), w.passes...)
}

// SetRenderPasses replaces the pass list. Order is execution order.
func (w *Window) SetRenderPasses(passes ...RenderPass) {
	w.passes = append([]RenderPass(nil), passes...)
}

// AddRenderPass appends a pass to the end of the list.
func (w *Window) AddRenderPass(p RenderPass) {
	w.passes = append(w.passes, p)
}

// TraverseAllPasses renders one frame.
//
// The device is brought up on first use. If it is not ready the call
// returns nil without recording anything; the failure has already been
// logged and the next call retries. Otherwise a single command encoder is
// opened, each pass traverses it in order with a nil parent, and exactly
// one command buffer is submitted. Submission does not wait for the GPU.
//
// If a capture was requested, the frame is composited and delivered to the
// image-ready listeners after submission.
//
// A pass error aborts the frame: the encoder is discarded, nothing is
// submitted and the error is returned.
func (w *Window) TraverseAllPasses(ctx context.Context) error {
	if w.Deleted() {
		return ErrWindowDeleted
	}
	_ = w.Initialize(ctx)
	if !w.Initialized() {
		return nil
	}

	start := time.Now()

	encoder, err := w.device.CreateCommandEncoder("gpuview_frame")
	if err != nil {
		return fmt.Errorf("gpuview: create command encoder: %w", err)
	}
	w.encoder = encoder
	defer func() { w.encoder = nil }()

	for i, p := range w.passes {
		if err := p.Traverse(w, nil); err != nil {
			encoder.Discard()
			return fmt.Errorf("gpuview: render pass %d: %w", i, err)
		}
	}

	cmd, err := encoder.Finish()
	if err != nil {
		encoder.Discard()
		return fmt.Errorf("gpuview: finish command encoder: %w", err)
	}
	if err := w.device.Queue().Submit(cmd); err != nil {
		return fmt.Errorf("gpuview: submit: %w", err)
	}

	elapsed := time.Since(start)
	w.observer.FrameSubmitted(elapsed)
	w.logger().Debug("gpuview: frame submitted",
		"passes", len(w.passes),
		"elapsed", elapsed)

	if w.captureRequested() {
		w.emitCanvasImage()
	}
	return nil
}
