// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"context"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuview/shadercache"
)

// SurfaceFormat is the color format the presentation canvas is configured with.
const SurfaceFormat = gputypes.TextureFormatBGRA8Unorm

// DepthFormat is the format of the window's depth/stencil attachment.
const DepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// Host provides GPU capabilities from the host environment.
//
// The window RECEIVES capabilities from the host, it does not create them.
// A method returning a nil capability without an error is treated the same
// as an error: the host lacks GPU support.
type Host interface {
	// RequestAdapter acquires the GPU adapter capability.
	RequestAdapter(ctx context.Context) (Adapter, error)

	// RequestDevice acquires a logical device from the adapter.
	RequestDevice(ctx context.Context, adapter Adapter) (Device, error)

	// RequestShaderCompiler acquires the shader-compiler capability.
	RequestShaderCompiler(ctx context.Context) (ShaderCompiler, error)
}

// ShaderCompiler compiles WGSL source to SPIR-V.
type ShaderCompiler = shadercache.Compiler

// Adapter is an opaque GPU adapter capability token.
type Adapter interface {
	// Name returns a human-readable description of the adapter.
	Name() string
}

// Device is an opaque logical device capability token.
type Device interface {
	// CreateCommandEncoder opens a new command-recording session.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// CreateTexture allocates a texture.
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// Queue returns the device's submission queue.
	Queue() Queue
}

// Queue accepts finished command buffers.
// Submit returns once the buffers are queued; it does not wait for the GPU.
type Queue interface {
	Submit(buffers ...CommandBuffer) error
}

// CommandBuffer is an opaque finished command buffer.
type CommandBuffer any

// CommandEncoder records GPU commands for one frame.
// It is shared by every pass of the frame and mutated sequentially.
type CommandEncoder interface {
	// BeginRenderPass starts recording a render pass.
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPassEncoder, error)

	// Finish ends recording and returns the command buffer.
	// The encoder must not be used afterwards.
	Finish() (CommandBuffer, error)

	// Discard abandons the recording without producing a command buffer.
	// The encoder must not be used afterwards. Discard after Finish is a
	// no-op.
	Discard()
}

// RenderPassEncoder records the commands of a single render pass.
type RenderPassEncoder interface {
	// SetViewport restricts rasterization to a pixel rectangle.
	SetViewport(x, y, width, height float32)

	// SetPipeline binds a pipeline for subsequent draws.
	SetPipeline(p *Pipeline)

	// End finishes the render pass.
	End() error
}

// RenderPassDescriptor describes a render pass.
// This mirrors the WebGPU GPURenderPassDescriptor specification.
type RenderPassDescriptor struct {
	// Label is an optional debug label.
	Label string

	// ColorAttachments are the color targets.
	ColorAttachments []ColorAttachment

	// DepthStencilAttachment is the optional depth/stencil target.
	DepthStencilAttachment *DepthStencilAttachment
}

// ColorAttachment describes one color target of a render pass.
type ColorAttachment struct {
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// DepthStencilAttachment describes the depth/stencil target of a render pass.
type DepthStencilAttachment struct {
	View              TextureView
	DepthLoadOp       gputypes.LoadOp
	DepthStoreOp      gputypes.StoreOp
	DepthClearValue   float32
	StencilLoadOp     gputypes.LoadOp
	StencilStoreOp    gputypes.StoreOp
	StencilClearValue uint32
}

// TextureDescriptor describes parameters for creating a texture.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Depth is the texture depth for 3D textures, or array layer count.
	// Use 1 for regular 2D textures.
	Depth uint32

	// MipLevelCount is the number of mipmap levels.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling.
	SampleCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows the texture to be used in a texture binding.
	TextureUsageTextureBinding

	// TextureUsageStorageBinding allows the texture to be used in a storage binding.
	TextureUsageStorageBinding

	// TextureUsageRenderAttachment allows the texture to be used as a render attachment.
	TextureUsageRenderAttachment
)

// Texture represents a GPU texture resource.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// CreateView creates a view for this texture.
	CreateView() TextureView

	// Destroy releases GPU resources associated with this texture.
	Destroy()
}

// TextureView represents a view into a texture.
type TextureView interface {
	// Destroy releases resources associated with this view.
	Destroy()
}

// DepthTextureDescriptor returns the descriptor of a depth/stencil attachment
// covering width x height pixels.
func DepthTextureDescriptor(width, height int) TextureDescriptor {
	return TextureDescriptor{
		Label:         "gpuview_depth",
		Width:         uint32(max(width, 1)),  //nolint:gosec // G115: clamped positive
		Height:        uint32(max(height, 1)), //nolint:gosec // G115: clamped positive
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        DepthFormat,
		Usage:         TextureUsageRenderAttachment,
	}
}

// Canvas is the presentation surface the window renders into.
//
// The core only needs a pixel-addressable surface of a given size that can
// be configured for a device and read back as an image.
type Canvas interface {
	// Configure binds the canvas to a device with the given color format
	// and returns the view of the current presentation texture.
	Configure(device Device, format gputypes.TextureFormat) (TextureView, error)

	// CurrentView returns the presentation texture view for this frame.
	CurrentView() TextureView

	// SetSize resizes the canvas backing store.
	SetSize(width, height int)

	// Bounds returns the canvas rectangle in client coordinates.
	Bounds() image.Rectangle

	// Snapshot returns a copy of the presented pixels.
	Snapshot() *image.RGBA

	// Parent returns the container the canvas is attached to, or nil.
	Parent() Container
}

// Framebuffer is an off-screen render target that may replace the canvas
// as the destination of the current pass.
type Framebuffer interface {
	Size() (width, height int)
}
