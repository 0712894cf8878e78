// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuview"
)

// drainTimeout bounds how long Close waits for in-flight frames.
const drainTimeout = 5 * time.Second

// Device is a gpuview.Device on a HAL device.
type Device struct {
	hdev  hal.Device
	queue *queue
}

func newDevice(hdev hal.Device, hq hal.Queue) *Device {
	d := &Device{hdev: hdev}
	d.queue = &queue{hdev: hdev, hq: hq}
	return d
}

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device {
	return d.hdev
}

// CreateCommandEncoder implements gpuview.Device.
func (d *Device) CreateCommandEncoder(label string) (gpuview.CommandEncoder, error) {
	enc, err := d.hdev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &commandEncoder{device: d, enc: enc}, nil
}

// CreateTexture implements gpuview.Device.
func (d *Device) CreateTexture(desc *gpuview.TextureDescriptor) (gpuview.Texture, error) {
	tex, err := d.hdev.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: max(desc.Depth, 1),
		},
		MipLevelCount: max(desc.MipLevelCount, 1),
		SampleCount:   max(desc.SampleCount, 1),
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         halUsage(desc.Usage),
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}
	return &Texture{device: d, tex: tex, desc: *desc}, nil
}

// Queue implements gpuview.Device.
func (d *Device) Queue() gpuview.Queue {
	return d.queue
}

// halUsage maps gpuview usage flags to WebGPU usage flags.
func halUsage(u gpuview.TextureUsage) gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u&gpuview.TextureUsageCopySrc != 0 {
		out |= gputypes.TextureUsageCopySrc
	}
	if u&gpuview.TextureUsageCopyDst != 0 {
		out |= gputypes.TextureUsageCopyDst
	}
	if u&gpuview.TextureUsageTextureBinding != 0 {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u&gpuview.TextureUsageStorageBinding != 0 {
		out |= gputypes.TextureUsageStorageBinding
	}
	if u&gpuview.TextureUsageRenderAttachment != 0 {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

// Texture is a gpuview.Texture backed by a HAL texture.
type Texture struct {
	device *Device
	tex    hal.Texture
	desc   gpuview.TextureDescriptor
	once   sync.Once
}

// Width implements gpuview.Texture.
func (t *Texture) Width() uint32 { return t.desc.Width }

// Height implements gpuview.Texture.
func (t *Texture) Height() uint32 { return t.desc.Height }

// Format implements gpuview.Texture.
func (t *Texture) Format() gputypes.TextureFormat { return t.desc.Format }

// CreateView implements gpuview.Texture. A view that cannot be created is
// logged and returned empty; render passes skip empty views.
func (t *Texture) CreateView() gpuview.TextureView {
	view, err := t.device.hdev.CreateTextureView(t.tex, &hal.TextureViewDescriptor{
		Label: t.desc.Label + "_view",
	})
	if err != nil {
		gpuview.Logger().Warn("wgpu: create texture view", "label", t.desc.Label, "err", err)
		return &textureView{}
	}
	return &textureView{device: t.device, view: view}
}

// Destroy implements gpuview.Texture. Destroy is idempotent.
func (t *Texture) Destroy() {
	t.once.Do(func() {
		t.device.hdev.DestroyTexture(t.tex)
	})
}

type textureView struct {
	device *Device
	view   hal.TextureView
	once   sync.Once
}

func (v *textureView) Destroy() {
	if v.view == nil {
		return
	}
	v.once.Do(func() {
		v.device.hdev.DestroyTextureView(v.view)
	})
}

// halView unwraps a view created by this backend.
func halView(v gpuview.TextureView) hal.TextureView {
	if tv, ok := v.(*textureView); ok && tv != nil {
		return tv.view
	}
	return nil
}

type commandEncoder struct {
	device *Device
	enc    hal.CommandEncoder
	done   bool
}

func (e *commandEncoder) BeginRenderPass(desc *gpuview.RenderPassDescriptor) (gpuview.RenderPassEncoder, error) {
	hd := &hal.RenderPassDescriptor{Label: desc.Label}
	for _, a := range desc.ColorAttachments {
		view := halView(a.View)
		if view == nil {
			return nil, fmt.Errorf("render pass %q: %w", desc.Label, ErrForeignDevice)
		}
		hd.ColorAttachments = append(hd.ColorAttachments, hal.RenderPassColorAttachment{
			View:       view,
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: a.ClearValue,
		})
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		if view := halView(ds.View); view != nil {
			hd.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
				View:              view,
				DepthLoadOp:       ds.DepthLoadOp,
				DepthStoreOp:      ds.DepthStoreOp,
				DepthClearValue:   ds.DepthClearValue,
				StencilLoadOp:     ds.StencilLoadOp,
				StencilStoreOp:    ds.StencilStoreOp,
				StencilClearValue: ds.StencilClearValue,
			}
		}
	}
	return &renderPassEncoder{rp: e.enc.BeginRenderPass(hd)}, nil
}

func (e *commandEncoder) Finish() (gpuview.CommandBuffer, error) {
	cb, err := e.enc.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	e.done = true
	return &commandBuffer{buf: cb}, nil
}

// Discard returns the HAL encoder's resources without producing a buffer.
func (e *commandEncoder) Discard() {
	if e.done {
		return
	}
	e.done = true
	e.enc.DiscardEncoding()
}

// viewportSetter is implemented by HAL render passes supporting dynamic
// viewports.
type viewportSetter interface {
	SetViewport(x, y, width, height, minDepth, maxDepth float32)
}

type renderPassEncoder struct {
	rp hal.RenderPassEncoder
}

func (p *renderPassEncoder) SetViewport(x, y, width, height float32) {
	if vs, ok := p.rp.(viewportSetter); ok {
		vs.SetViewport(x, y, width, height, 0, 1)
	}
}

// SetPipeline binds the HAL render pipeline attached to pl with
// Pipeline.SetHandle. Pipelines without a HAL handle are skipped.
func (p *renderPassEncoder) SetPipeline(pl *gpuview.Pipeline) {
	if pl == nil {
		return
	}
	if rp, ok := pl.Handle().(hal.RenderPipeline); ok {
		p.rp.SetPipeline(rp)
	}
}

func (p *renderPassEncoder) End() error {
	p.rp.End()
	return nil
}

type commandBuffer struct {
	buf hal.CommandBuffer
}

type inflight struct {
	value   uint64
	buffers []hal.CommandBuffer
}

// queue submits without waiting. Command buffers are freed once a later
// Submit observes their fence value signalled, or on drain.
type queue struct {
	hdev hal.Device
	hq   hal.Queue

	mu      sync.Mutex
	fence   hal.Fence
	value   uint64
	pending []inflight
}

func (q *queue) Submit(buffers ...gpuview.CommandBuffer) error {
	cbs := make([]hal.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(*commandBuffer)
		if !ok || cb == nil {
			return ErrForeignBuffer
		}
		cbs = append(cbs, cb.buf)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.reclaim()

	if q.fence == nil {
		fence, err := q.hdev.CreateFence()
		if err != nil {
			q.free(cbs)
			return fmt.Errorf("create fence: %w", err)
		}
		q.fence = fence
	}

	q.value++
	if err := q.hq.Submit(cbs, q.fence, q.value); err != nil {
		q.free(cbs)
		return fmt.Errorf("submit: %w", err)
	}
	q.pending = append(q.pending, inflight{value: q.value, buffers: cbs})
	return nil
}

// reclaim frees the buffers of completed submissions. Caller holds q.mu.
func (q *queue) reclaim() {
	for len(q.pending) > 0 {
		p := q.pending[0]
		done, err := q.hdev.Wait(q.fence, p.value, 0)
		if err != nil || !done {
			return
		}
		q.free(p.buffers)
		q.pending = q.pending[1:]
	}
}

func (q *queue) free(cbs []hal.CommandBuffer) {
	for _, cb := range cbs {
		q.hdev.FreeCommandBuffer(cb)
	}
}

// drain waits for every submission and destroys the fence.
func (q *queue) drain() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.fence == nil {
		return nil
	}
	var err error
	if n := len(q.pending); n > 0 {
		ok, werr := q.hdev.Wait(q.fence, q.pending[n-1].value, drainTimeout)
		if werr != nil || !ok {
			err = fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", ok, werr)
		}
	}
	for _, p := range q.pending {
		q.free(p.buffers)
	}
	q.pending = nil
	q.hdev.DestroyFence(q.fence)
	q.fence = nil
	return err
}
