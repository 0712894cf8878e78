// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend/soft"
)

func TestInitialize_Ready(t *testing.T) {
	w, host := newSoftWindow(t, 64, 32, nil)

	if err := w.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if w.State() != gpuview.StateReady || !w.Initialized() {
		t.Errorf("State() = %v, want ready", w.State())
	}
	if w.Adapter() == nil || w.Device() == nil || w.ShaderCompiler() == nil {
		t.Error("capabilities missing after Initialize")
	}
	if w.SurfaceView() == nil {
		t.Error("SurfaceView() = nil")
	}
	depth := w.DepthTexture()
	if depth == nil || w.DepthView() == nil {
		t.Fatal("depth attachment missing")
	}
	if depth.Width() != 64 || depth.Height() != 32 || depth.Format() != gpuview.DepthFormat {
		t.Errorf("depth = %dx%d %v, want 64x32 %v", depth.Width(), depth.Height(), depth.Format(), gpuview.DepthFormat)
	}
	if !host.SoftCanvas().Configured() {
		t.Error("canvas was not configured")
	}
	if cw, ch := host.SoftCanvas().Size(); cw != 64 || ch != 32 {
		t.Errorf("canvas size = %dx%d, want 64x32", cw, ch)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	sh := soft.NewHost()
	host := &flakyHost{Host: sh}
	w := newWindowOn(t, host, sh, 4, 4, nil)

	for range 3 {
		if err := w.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
	}
	if got := host.calls(); got != 1 {
		t.Errorf("adapter requests = %d, want 1", got)
	}
	if got := sh.Device().LiveTextures(); got != 1 {
		t.Errorf("live textures = %d, want 1 depth texture", got)
	}
}

func TestInitialize_FailureThenRetry(t *testing.T) {
	sh := soft.NewHost()
	host := &flakyHost{Host: sh, failures: 2}
	rec := &recorder{}
	w := newWindowOn(t, host, sh, 4, 4, nil, gpuview.WithObserver(rec))
	ctx := context.Background()

	for i := range 2 {
		err := w.Initialize(ctx)
		if !errors.Is(err, gpuview.ErrInitialization) || !errors.Is(err, errAdapterLost) {
			t.Fatalf("attempt %d: Initialize() error = %v, want ErrInitialization wrapping errAdapterLost", i, err)
		}
		if w.State() != gpuview.StateFailed {
			t.Errorf("attempt %d: State() = %v, want failed", i, w.State())
		}
		if w.Device() != nil {
			t.Errorf("attempt %d: Device() set after failure", i)
		}
		if !errors.Is(w.LastInitError(), errAdapterLost) {
			t.Errorf("attempt %d: LastInitError() = %v", i, w.LastInitError())
		}
	}

	if err := w.Initialize(ctx); err != nil {
		t.Fatalf("third Initialize() error = %v", err)
	}
	if w.State() != gpuview.StateReady {
		t.Errorf("State() = %v, want ready", w.State())
	}
	if w.LastInitError() != nil {
		t.Errorf("LastInitError() = %v, want nil", w.LastInitError())
	}
	if len(rec.failures) != 2 {
		t.Errorf("observer failures = %d, want 2", len(rec.failures))
	}
}

func TestInitialize_MissingHostOrCanvas(t *testing.T) {
	ctx := context.Background()

	w := gpuview.New()
	if err := w.Initialize(ctx); !errors.Is(err, gpuview.ErrNoHost) {
		t.Errorf("Initialize() without host error = %v, want ErrNoHost", err)
	}

	w = gpuview.New(gpuview.WithHost(soft.NewHost()))
	if err := w.Initialize(ctx); !errors.Is(err, gpuview.ErrNoCanvas) {
		t.Errorf("Initialize() without canvas error = %v, want ErrNoCanvas", err)
	}
}

func TestInitialize_ClosedHost(t *testing.T) {
	w, host := newSoftWindow(t, 4, 4, nil)
	_ = host.Close()
	if err := w.Initialize(context.Background()); !errors.Is(err, gpuview.ErrInitialization) {
		t.Errorf("Initialize() error = %v, want ErrInitialization", err)
	}
	if w.Initialized() {
		t.Error("window ready on a closed host")
	}
}

func TestInitialize_ConcurrentCallsCoalesce(t *testing.T) {
	sh := soft.NewHost()
	gate := make(chan struct{})
	host := &flakyHost{Host: sh, gate: gate}
	w := newWindowOn(t, host, sh, 4, 4, nil)

	const callers = 8
	errs := make([]error, callers)
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := range callers {
		go func() {
			defer done.Done()
			started.Done()
			errs[i] = w.Initialize(context.Background())
		}()
	}
	started.Wait()
	close(gate)
	done.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: Initialize() error = %v", i, err)
		}
	}
	if got := host.calls(); got != 1 {
		t.Errorf("adapter requests = %d, want 1", got)
	}
	if !w.Initialized() {
		t.Error("window not ready")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    gpuview.State
		want string
	}{
		{gpuview.StateUninitialized, "uninitialized"},
		{gpuview.StateInitializing, "initializing"},
		{gpuview.StateReady, "ready"},
		{gpuview.StateFailed, "failed"},
		{gpuview.State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
