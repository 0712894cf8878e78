// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuview"
)

// readbackTimeout bounds how long Readback waits for the GPU.
const readbackTimeout = 5 * time.Second

// copyPitchAlignment is the WebGPU row alignment of texture-to-buffer copies.
const copyPitchAlignment = 256

// Canvas is an off-screen gpuview.Canvas rendering into a HAL texture.
type Canvas struct {
	mu            sync.Mutex
	width, height int
	origin        image.Point
	parent        gpuview.Container

	device *Device
	format gputypes.TextureFormat
	target *Texture
	view   gpuview.TextureView
}

// NewCanvas creates an unconfigured 1x1 canvas.
func NewCanvas() *Canvas {
	return &Canvas{width: 1, height: 1}
}

// Configure implements gpuview.Canvas.
func (c *Canvas) Configure(dev gpuview.Device, format gputypes.TextureFormat) (gpuview.TextureView, error) {
	d, ok := dev.(*Device)
	if !ok {
		return nil, ErrForeignDevice
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.device = d
	c.format = format
	if err := c.recreate(); err != nil {
		return nil, err
	}
	return c.view, nil
}

// recreate allocates the render target at the current size.
// Caller holds c.mu.
func (c *Canvas) recreate() error {
	c.destroyTarget()

	tex, err := c.device.CreateTexture(&gpuview.TextureDescriptor{
		Label:         "gpuview_canvas",
		Width:         uint32(c.width),  //nolint:gosec // G115: clamped positive in SetSize
		Height:        uint32(c.height), //nolint:gosec // G115: clamped positive in SetSize
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        c.format,
		Usage:         gpuview.TextureUsageRenderAttachment | gpuview.TextureUsageCopySrc,
	})
	if err != nil {
		return err
	}
	c.target = tex.(*Texture)
	c.view = c.target.CreateView()
	return nil
}

func (c *Canvas) destroyTarget() {
	if c.view != nil {
		c.view.Destroy()
		c.view = nil
	}
	if c.target != nil {
		c.target.Destroy()
		c.target = nil
	}
}

func (c *Canvas) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyTarget()
}

// CurrentView implements gpuview.Canvas.
func (c *Canvas) CurrentView() gpuview.TextureView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetSize implements gpuview.Canvas. A configured canvas reallocates its
// render target.
func (c *Canvas) SetSize(width, height int) {
	width, height = max(width, 1), max(height, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	if c.device != nil {
		if err := c.recreate(); err != nil {
			gpuview.Logger().Warn("wgpu: resize canvas", "width", width, "height", height, "err", err)
		}
	}
}

// SetOrigin moves the canvas in client coordinates.
func (c *Canvas) SetOrigin(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = image.Pt(x, y)
}

// Bounds implements gpuview.Canvas.
func (c *Canvas) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Rectangle{Min: c.origin, Max: c.origin.Add(image.Pt(c.width, c.height))}
}

// Parent implements gpuview.Canvas.
func (c *Canvas) Parent() gpuview.Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parent
}

// SetParent records the container the canvas is attached to.
func (c *Canvas) SetParent(p gpuview.Container) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parent = p
}

// Snapshot implements gpuview.Canvas. It returns nil if the canvas is not
// configured or the readback fails.
func (c *Canvas) Snapshot() *image.RGBA {
	img, err := c.Readback()
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			gpuview.Logger().Warn("wgpu: canvas readback", "err", err)
		}
		return nil
	}
	return img
}

// Readback copies the render target to a staging buffer, waits for the
// GPU and converts BGRA to RGBA.
func (c *Canvas) Readback() (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target == nil {
		return nil, ErrNotConfigured
	}
	return c.readback()
}

func (c *Canvas) readback() (*image.RGBA, error) {
	hdev := c.device.hdev
	w, h := uint32(c.width), uint32(c.height) //nolint:gosec // G115: clamped positive

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := hdev.CreateBuffer(&hal.BufferDescriptor{
		Label: "gpuview_canvas_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer hdev.DestroyBuffer(staging)

	enc, err := hdev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "gpuview_readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("gpuview_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	enc.CopyTextureToBuffer(c.target.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: c.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cb, err := enc.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer hdev.FreeCommandBuffer(cb)

	fence, err := hdev.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer hdev.DestroyFence(fence)

	if err := c.device.queue.hq.Submit([]hal.CommandBuffer{cb}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	ok, err := hdev.Wait(fence, 1, readbackTimeout)
	if err != nil || !ok {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	data := make([]byte, stagingSize)
	if err := c.device.queue.hq.ReadBuffer(staging, 0, data); err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	unpackRows(img, data, int(alignedBytesPerRow), c.format == gputypes.TextureFormatBGRA8Unorm)
	return img, nil
}

// unpackRows strips the row padding of a readback and swizzles BGRA to RGBA.
func unpackRows(dst *image.RGBA, src []byte, srcStride int, bgra bool) {
	rowBytes := dst.Rect.Dx() * 4
	for y := range dst.Rect.Dy() {
		s := src[y*srcStride : y*srcStride+rowBytes]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+rowBytes]
		copy(d, s)
		if !bgra {
			continue
		}
		for i := 0; i < rowBytes; i += 4 {
			d[i], d[i+2] = d[i+2], d[i]
		}
	}
}

var _ gpuview.Canvas = (*Canvas)(nil)
