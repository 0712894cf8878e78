// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// State is the device bring-up state of a Window.
type State int32

const (
	// StateUninitialized means no bring-up has been attempted yet.
	StateUninitialized State = iota

	// StateInitializing means a bring-up is in flight.
	StateInitializing

	// StateReady means every capability was acquired.
	StateReady

	// StateFailed means the last bring-up failed. The next call retries.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// initializer serializes device bring-up. Concurrent callers share the
// in-flight attempt through the singleflight group.
type initializer struct {
	mu    sync.Mutex
	state State
	err   error
	group singleflight.Group
}

func (in *initializer) get() (State, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state, in.err
}

func (in *initializer) set(s State, err error) {
	in.mu.Lock()
	in.state = s
	in.err = err
	in.mu.Unlock()
}

// State returns the current bring-up state.
func (w *Window) State() State {
	s, _ := w.init.get()
	return s
}

// Initialized reports whether the device is ready.
func (w *Window) Initialized() bool {
	return w.State() == StateReady
}

// LastInitError returns the error of the last failed bring-up, or nil.
func (w *Window) LastInitError() error {
	_, err := w.init.get()
	return err
}

// Initialize brings the GPU device up: adapter, device, shader compiler,
// presentation surface, depth buffer, then binds the window to its shader
// cache. Once ready, further calls return nil immediately.
//
// Failures are logged and returned wrapped in ErrInitialization. The window
// stays unready and a later call retries. Concurrent calls made while a
// bring-up is in flight wait for it and share its result.
//
// The in-flight bring-up runs with the ctx of the call that started it.
// If that ctx is canceled, every caller waiting on the attempt receives
// the failure, even when its own ctx is still live.
func (w *Window) Initialize(ctx context.Context) error {
	if w.Initialized() {
		return nil
	}
	_, err, _ := w.init.group.Do("initialize", func() (any, error) {
		if w.Initialized() {
			return nil, nil
		}
		return nil, w.bringUp(ctx)
	})
	return err
}

func (w *Window) bringUp(ctx context.Context) error {
	w.init.set(StateInitializing, nil)

	caps, err := w.acquire(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInitialization, err)
		w.init.set(StateFailed, err)
		w.logger().Error("gpuview: unable to find webgpu support", "err", err)
		w.observer.InitializationFailed(err)
		return err
	}

	w.adapter = caps.adapter
	w.device = caps.device
	w.compiler = caps.compiler
	w.surfaceView = caps.surfaceView
	w.depth = caps.depth
	w.depthView = caps.depth.CreateView()

	w.shaderCache.SetContext(w)
	w.init.set(StateReady, nil)

	w.logger().Info("gpuview: device ready",
		"adapter", caps.adapter.Name(),
		"width", w.width,
		"height", w.height)
	return nil
}

// capabilities holds the results of a bring-up until it fully succeeds,
// so a failure never leaves the window's capability fields half set. The
// canvas may stay configured after a failed attempt; the retry configures
// it again.
type capabilities struct {
	adapter     Adapter
	device      Device
	compiler    ShaderCompiler
	surfaceView TextureView
	depth       Texture
}

func (w *Window) acquire(ctx context.Context) (*capabilities, error) {
	if w.host == nil {
		return nil, ErrNoHost
	}
	if w.canvas == nil {
		return nil, ErrNoCanvas
	}

	var caps capabilities
	var err error

	// Step 1: Adapter
	caps.adapter, err = w.host.RequestAdapter(ctx)
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	if caps.adapter == nil {
		return nil, fmt.Errorf("request adapter: %w", errNoCapability)
	}

	// Step 2: Device
	caps.device, err = w.host.RequestDevice(ctx, caps.adapter)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	if caps.device == nil {
		return nil, fmt.Errorf("request device: %w", errNoCapability)
	}

	// Step 3: Shader compiler
	caps.compiler, err = w.host.RequestShaderCompiler(ctx)
	if err != nil {
		return nil, fmt.Errorf("request shader compiler: %w", err)
	}
	if caps.compiler == nil {
		return nil, fmt.Errorf("request shader compiler: %w", errNoCapability)
	}

	// Step 4: Presentation surface
	w.canvas.SetSize(w.width, w.height)
	caps.surfaceView, err = w.canvas.Configure(caps.device, SurfaceFormat)
	if err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}

	// Step 5: Depth/stencil attachment sized to the canvas
	desc := DepthTextureDescriptor(w.width, w.height)
	caps.depth, err = caps.device.CreateTexture(&desc)
	if err != nil {
		return nil, fmt.Errorf("create depth texture: %w", err)
	}
	if caps.depth == nil {
		return nil, fmt.Errorf("create depth texture: %w", errNoCapability)
	}

	return &caps, nil
}
