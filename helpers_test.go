// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend/soft"
	"github.com/gogpu/gpuview/scene"
)

var errAdapterLost = errors.New("adapter lost")

// flakyHost wraps a soft host, failing the first failures adapter requests
// and optionally blocking every request on gate.
type flakyHost struct {
	*soft.Host

	mu           sync.Mutex
	failures     int
	adapterCalls int
	gate         chan struct{}
}

func (h *flakyHost) RequestAdapter(ctx context.Context) (gpuview.Adapter, error) {
	h.mu.Lock()
	h.adapterCalls++
	fail := h.failures > 0
	if fail {
		h.failures--
	}
	gate := h.gate
	h.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return nil, errAdapterLost
	}
	return h.Host.RequestAdapter(ctx)
}

func (h *flakyHost) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.adapterCalls
}

// recorder is an Observer that counts notifications.
type recorder struct {
	mu       sync.Mutex
	frames   int
	failures []error
	captures []string
}

func (r *recorder) FrameSubmitted(time.Duration) {
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

func (r *recorder) InitializationFailed(err error) {
	r.mu.Lock()
	r.failures = append(r.failures, err)
	r.mu.Unlock()
}

func (r *recorder) CaptureResolved(format string) {
	r.mu.Lock()
	r.captures = append(r.captures, format)
	r.mu.Unlock()
}

func (r *recorder) captureCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.captures)
}

// newSoftWindow creates a window on a fresh soft host with one renderer
// per viewport, each cleared to its colour.
func newSoftWindow(t *testing.T, width, height int, renderers []*scene.Renderer, opts ...gpuview.Option) (*gpuview.Window, *soft.Host) {
	t.Helper()
	host := soft.NewHost()
	return newWindowOn(t, host, host, width, height, renderers, opts...), host
}

func newWindowOn(t *testing.T, host gpuview.Host, sh *soft.Host, width, height int, renderers []*scene.Renderer, opts ...gpuview.Option) *gpuview.Window {
	t.Helper()
	rs := make(gpuview.Renderers, len(renderers))
	for i, r := range renderers {
		rs[i] = r
	}
	base := []gpuview.Option{
		gpuview.WithSize(width, height),
		gpuview.WithHost(host),
		gpuview.WithCanvas(sh.Canvas()),
		gpuview.WithRenderable(rs),
	}
	w := gpuview.New(append(base, opts...)...)
	t.Cleanup(w.Delete)
	return w
}

func frame(t *testing.T, w *gpuview.Window) {
	t.Helper()
	if err := w.TraverseAllPasses(context.Background()); err != nil {
		t.Fatalf("TraverseAllPasses() error = %v", err)
	}
}
