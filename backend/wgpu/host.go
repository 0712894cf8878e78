// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend"
	"github.com/gogpu/gpuview/shadercache"
)

// Errors reported by the wgpu backend.
var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("wgpu: nil DeviceProvider")

	// ErrNoHAL is returned when the provider does not expose HAL types.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrForeignDevice is returned when a capability of another backend is used.
	ErrForeignDevice = errors.New("wgpu: foreign device")

	// ErrForeignBuffer is returned when a command buffer of another backend is submitted.
	ErrForeignBuffer = errors.New("wgpu: foreign command buffer")

	// ErrNotConfigured is returned by canvas operations before Configure.
	ErrNotConfigured = errors.New("wgpu: canvas not configured")
)

// halProvider is implemented by device providers sharing their HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Option configures a Host.
type Option func(*Host)

// WithCompiler replaces the naga shader compiler.
func WithCompiler(c gpuview.ShaderCompiler) Option {
	return func(h *Host) {
		h.compiler = c
	}
}

// WithCanvasSize sets the initial size of the off-screen canvas.
func WithCanvasSize(width, height int) Option {
	return func(h *Host) {
		h.canvas.SetSize(width, height)
	}
}

// Host is a gpuview.Host and backend.Backend on a shared HAL device.
type Host struct {
	provider gpucontext.DeviceProvider
	hdev     hal.Device
	hqueue   hal.Queue
	canvas   *Canvas
	compiler gpuview.ShaderCompiler

	mu     sync.Mutex
	device *Device
}

// NewHost creates a host on the provider's HAL device.
func NewHost(provider gpucontext.DeviceProvider, opts ...Option) (*Host, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoHAL
	}

	h := &Host{
		provider: provider,
		hdev:     dev,
		hqueue:   queue,
		canvas:   NewCanvas(),
		compiler: shadercache.NagaCompiler{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Factory returns a backend.Factory creating hosts on provider.
func Factory(provider gpucontext.DeviceProvider, opts ...Option) backend.Factory {
	return func() (backend.Backend, error) {
		return NewHost(provider, opts...)
	}
}

// Name implements backend.Backend.
func (h *Host) Name() string {
	return backend.NameWGPU
}

// Host implements backend.Backend.
func (h *Host) Host() gpuview.Host {
	return h
}

// Canvas implements backend.Backend.
func (h *Host) Canvas() gpuview.Canvas {
	return h.canvas
}

// RequestAdapter implements gpuview.Host.
func (h *Host) RequestAdapter(ctx context.Context) (gpuview.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return adapter{format: h.provider.SurfaceFormat()}, nil
}

// RequestDevice implements gpuview.Host.
func (h *Host) RequestDevice(ctx context.Context, _ gpuview.Adapter) (gpuview.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.device == nil {
		h.device = newDevice(h.hdev, h.hqueue)
	}
	return h.device, nil
}

// RequestShaderCompiler implements gpuview.Host.
func (h *Host) RequestShaderCompiler(ctx context.Context) (gpuview.ShaderCompiler, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.compiler, nil
}

// Close waits for in-flight frames and releases the canvas target.
// The HAL device belongs to the provider and is not destroyed.
func (h *Host) Close() error {
	h.canvas.release()
	h.mu.Lock()
	dev := h.device
	h.mu.Unlock()
	if dev != nil {
		return dev.queue.drain()
	}
	return nil
}

type adapter struct {
	format gputypes.TextureFormat
}

func (a adapter) Name() string {
	return fmt.Sprintf("wgpu hal (surface %v)", a.format)
}

var (
	_ gpuview.Host    = (*Host)(nil)
	_ backend.Backend = (*Host)(nil)
)
