// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/gpuview"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned when a closed backend is used.
	ErrClosed = errors.New("backend: closed")
)

// Backend supplies the GPU capabilities and the presentation canvas of a
// window. A backend is bound to a single window.
type Backend interface {
	// Name returns the backend identifier (e.g., "soft", "wgpu").
	Name() string

	// Host returns the capability provider passed to gpuview.WithHost.
	Host() gpuview.Host

	// Canvas returns the canvas passed to gpuview.WithCanvas.
	Canvas() gpuview.Canvas

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close() error
}

// Options returns the window options wiring b into a new window.
func Options(b Backend) []gpuview.Option {
	return []gpuview.Option{
		gpuview.WithHost(b.Host()),
		gpuview.WithCanvas(b.Canvas()),
	}
}
