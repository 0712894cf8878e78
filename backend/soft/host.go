// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"context"
	"sync"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend"
	"github.com/gogpu/gpuview/shadercache"
)

// AdapterName is the name reported by the soft adapter.
const AdapterName = "gpuview soft rasterizer"

func init() {
	backend.Register(backend.NameSoft, func() (backend.Backend, error) {
		return NewHost(), nil
	})
}

// Option configures a Host.
type Option func(*Host)

// WithCompiler replaces the naga shader compiler.
func WithCompiler(c gpuview.ShaderCompiler) Option {
	return func(h *Host) {
		h.compiler = c
	}
}

// WithCanvasOrigin places the canvas at origin in client coordinates.
func WithCanvasOrigin(x, y int) Option {
	return func(h *Host) {
		h.canvas.SetOrigin(x, y)
	}
}

// Host is a gpuview.Host and backend.Backend backed by the CPU.
type Host struct {
	mu       sync.Mutex
	canvas   *Canvas
	compiler gpuview.ShaderCompiler
	device   *Device
	closed   bool
}

// NewHost creates a soft host with its own canvas.
func NewHost(opts ...Option) *Host {
	h := &Host{
		canvas:   NewCanvas(),
		compiler: shadercache.NagaCompiler{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements backend.Backend.
func (h *Host) Name() string {
	return backend.NameSoft
}

// Host implements backend.Backend.
func (h *Host) Host() gpuview.Host {
	return h
}

// Canvas implements backend.Backend.
func (h *Host) Canvas() gpuview.Canvas {
	return h.canvas
}

// SoftCanvas returns the canvas with its concrete type.
func (h *Host) SoftCanvas() *Canvas {
	return h.canvas
}

// Device returns the device handed out by RequestDevice, or nil.
func (h *Host) Device() *Device {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.device
}

// RequestAdapter implements gpuview.Host.
func (h *Host) RequestAdapter(ctx context.Context) (gpuview.Adapter, error) {
	if err := h.check(ctx); err != nil {
		return nil, err
	}
	return adapter{}, nil
}

// RequestDevice implements gpuview.Host. The same device is returned on
// every call.
func (h *Host) RequestDevice(ctx context.Context, _ gpuview.Adapter) (gpuview.Device, error) {
	if err := h.check(ctx); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.device == nil {
		h.device = newDevice()
	}
	return h.device, nil
}

// RequestShaderCompiler implements gpuview.Host.
func (h *Host) RequestShaderCompiler(ctx context.Context) (gpuview.ShaderCompiler, error) {
	if err := h.check(ctx); err != nil {
		return nil, err
	}
	return h.compiler, nil
}

// Close implements backend.Backend. Close is idempotent.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *Host) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return backend.ErrClosed
	}
	return nil
}

type adapter struct{}

func (adapter) Name() string { return AdapterName }

var (
	_ gpuview.Host    = (*Host)(nil)
	_ backend.Backend = (*Host)(nil)
)
