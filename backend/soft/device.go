// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuview"
)

// Errors reported by the soft device.
var (
	// ErrEncoderFinished is returned when a finished encoder is reused.
	ErrEncoderFinished = errors.New("soft: command encoder finished")

	// ErrPassOpen is returned when a render pass was not ended.
	ErrPassOpen = errors.New("soft: render pass still open")

	// ErrForeignBuffer is returned when a command buffer from another
	// device is submitted.
	ErrForeignBuffer = errors.New("soft: foreign command buffer")

	// ErrResubmitted is returned when a command buffer is submitted twice.
	ErrResubmitted = errors.New("soft: command buffer already submitted")

	// ErrInvalidTexture is returned for zero-sized texture descriptors.
	ErrInvalidTexture = errors.New("soft: invalid texture descriptor")
)

// Device is an in-memory gpuview.Device.
type Device struct {
	queue *Queue

	mu        sync.Mutex
	textures  int
	discarded int
}

func newDevice() *Device {
	return &Device{queue: &Queue{}}
}

// CreateCommandEncoder implements gpuview.Device.
func (d *Device) CreateCommandEncoder(label string) (gpuview.CommandEncoder, error) {
	return &commandEncoder{buf: &CommandBuffer{Label: label, device: d}}, nil
}

// Discarded returns how many encoders were abandoned with Discard.
func (d *Device) Discarded() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.discarded
}

// CreateTexture implements gpuview.Device.
func (d *Device) CreateTexture(desc *gpuview.TextureDescriptor) (gpuview.Texture, error) {
	if desc == nil || desc.Width == 0 || desc.Height == 0 {
		return nil, ErrInvalidTexture
	}
	d.mu.Lock()
	d.textures++
	d.mu.Unlock()
	return &Texture{desc: *desc, device: d}, nil
}

// Queue implements gpuview.Device.
func (d *Device) Queue() gpuview.Queue {
	return d.queue
}

// SoftQueue returns the queue with its concrete type.
func (d *Device) SoftQueue() *Queue {
	return d.queue
}

// LiveTextures returns the number of textures not yet destroyed.
func (d *Device) LiveTextures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.textures
}

func (d *Device) release() {
	d.mu.Lock()
	d.textures--
	d.mu.Unlock()
}

// Texture is an in-memory gpuview.Texture. It holds no pixels; only the
// canvas view is ever rasterized into.
type Texture struct {
	desc      gpuview.TextureDescriptor
	device    *Device
	once      sync.Once
	destroyed bool
}

// Width implements gpuview.Texture.
func (t *Texture) Width() uint32 { return t.desc.Width }

// Height implements gpuview.Texture.
func (t *Texture) Height() uint32 { return t.desc.Height }

// Format implements gpuview.Texture.
func (t *Texture) Format() gputypes.TextureFormat { return t.desc.Format }

// Label returns the descriptor label.
func (t *Texture) Label() string { return t.desc.Label }

// Usage returns the descriptor usage flags.
func (t *Texture) Usage() gpuview.TextureUsage { return t.desc.Usage }

// CreateView implements gpuview.Texture.
func (t *Texture) CreateView() gpuview.TextureView {
	return &textureView{texture: t}
}

// Destroy implements gpuview.Texture. Destroy is idempotent.
func (t *Texture) Destroy() {
	t.once.Do(func() {
		t.destroyed = true
		t.device.release()
	})
}

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool { return t.destroyed }

type textureView struct {
	texture *Texture
}

func (*textureView) Destroy() {}

// RecordedPass is a render pass as recorded by the soft encoder.
type RecordedPass struct {
	Label string

	// Clears holds the colour attachments with their load ops.
	Clears []gpuview.ColorAttachment

	// Depth is the depth/stencil attachment, or nil.
	Depth *gpuview.DepthStencilAttachment

	// Viewport is (x, y, width, height) in pixels, origin top-left.
	Viewport    [4]float32
	HasViewport bool

	// Pipeline is the name of the bound pipeline, or "".
	Pipeline string
}

// CommandBuffer is a finished recording of the soft encoder.
type CommandBuffer struct {
	Label  string
	Passes []RecordedPass

	device    *Device
	submitted bool
}

type commandEncoder struct {
	buf      *CommandBuffer
	open     *renderPassEncoder
	finished bool
}

func (e *commandEncoder) BeginRenderPass(desc *gpuview.RenderPassDescriptor) (gpuview.RenderPassEncoder, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	if e.open != nil {
		return nil, ErrPassOpen
	}
	rp := &renderPassEncoder{
		encoder: e,
		pass: RecordedPass{
			Label:  desc.Label,
			Clears: append([]gpuview.ColorAttachment(nil), desc.ColorAttachments...),
			Depth:  desc.DepthStencilAttachment,
		},
	}
	e.open = rp
	return rp, nil
}

func (e *commandEncoder) Finish() (gpuview.CommandBuffer, error) {
	if e.finished {
		return nil, ErrEncoderFinished
	}
	if e.open != nil {
		return nil, ErrPassOpen
	}
	e.finished = true
	return e.buf, nil
}

func (e *commandEncoder) Discard() {
	if e.finished {
		return
	}
	e.finished = true
	e.open = nil
	d := e.buf.device
	d.mu.Lock()
	d.discarded++
	d.mu.Unlock()
}

type renderPassEncoder struct {
	encoder *commandEncoder
	pass    RecordedPass
	ended   bool
}

func (p *renderPassEncoder) SetViewport(x, y, width, height float32) {
	p.pass.Viewport = [4]float32{x, y, width, height}
	p.pass.HasViewport = true
}

func (p *renderPassEncoder) SetPipeline(pl *gpuview.Pipeline) {
	if pl == nil {
		p.pass.Pipeline = ""
		return
	}
	p.pass.Pipeline = pl.Name()
}

func (p *renderPassEncoder) End() error {
	if p.ended {
		return fmt.Errorf("soft: render pass %q already ended", p.pass.Label)
	}
	p.ended = true
	p.encoder.buf.Passes = append(p.encoder.buf.Passes, p.pass)
	p.encoder.open = nil
	return nil
}

// Queue is the soft device queue. Submit replays colour clears into the
// canvas, scoped to the pass viewport.
type Queue struct {
	mu          sync.Mutex
	submissions int
	buffers     []*CommandBuffer
}

// Submit implements gpuview.Queue.
func (q *Queue) Submit(buffers ...gpuview.CommandBuffer) error {
	cbs := make([]*CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok || cb == nil {
			return ErrForeignBuffer
		}
		if cb.submitted {
			return ErrResubmitted
		}
		cbs = append(cbs, cb)
	}

	for _, cb := range cbs {
		cb.submitted = true
		for i := range cb.Passes {
			replay(&cb.Passes[i])
		}
	}

	q.mu.Lock()
	q.submissions++
	q.buffers = append(q.buffers, cbs...)
	q.mu.Unlock()
	return nil
}

// Submissions returns the number of Submit calls.
func (q *Queue) Submissions() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.submissions
}

// Submitted returns every command buffer submitted so far, in order.
func (q *Queue) Submitted() []*CommandBuffer {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*CommandBuffer(nil), q.buffers...)
}

// Last returns the most recently submitted command buffer, or nil.
func (q *Queue) Last() *CommandBuffer {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buffers) == 0 {
		return nil
	}
	return q.buffers[len(q.buffers)-1]
}

func replay(p *RecordedPass) {
	for _, a := range p.Clears {
		if a.LoadOp != gputypes.LoadOpClear {
			continue
		}
		v, ok := a.View.(*canvasView)
		if !ok {
			continue
		}
		r := v.canvas.fullRect()
		if p.HasViewport {
			r = viewportRect(p.Viewport)
		}
		v.canvas.fill(r, toNRGBA(a.ClearValue))
	}
}

// viewportRect rounds a float viewport to the pixels it covers.
func viewportRect(vp [4]float32) image.Rectangle {
	x0 := int(math.Round(float64(vp[0])))
	y0 := int(math.Round(float64(vp[1])))
	x1 := int(math.Round(float64(vp[0] + vp[2])))
	y1 := int(math.Round(float64(vp[1] + vp[3])))
	return image.Rect(x0, y0, x1, y1)
}

func toNRGBA(c gputypes.Color) color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255)) //nolint:gosec // G115: v clamped to [0, 1]
}
