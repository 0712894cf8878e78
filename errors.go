// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"errors"

	"github.com/gogpu/gpuview/internal/imageenc"
)

// Errors reported by Window operations.
var (
	// ErrInitialization is returned when a GPU capability could not be acquired.
	// The window stays unready and retries on the next frame.
	ErrInitialization = errors.New("gpuview: initialization failed")

	// ErrNoHost is returned when the window was created without a Host.
	ErrNoHost = errors.New("gpuview: no host")

	// ErrNoCanvas is returned when the window has no presentation canvas.
	ErrNoCanvas = errors.New("gpuview: no canvas")

	// ErrContainerMismatch is logged when the canvas parent disagrees with
	// the container being detached. It is never returned.
	ErrContainerMismatch = errors.New("gpuview: canvas parent does not match container")

	// ErrCaptureCanceled resolves a capture abandoned through Capture.Cancel.
	ErrCaptureCanceled = errors.New("gpuview: capture canceled")

	// ErrUnsupportedFormat is returned when an image format cannot be encoded.
	ErrUnsupportedFormat = imageenc.ErrUnsupportedFormat

	// ErrWindowDeleted is returned by operations on a deleted window.
	ErrWindowDeleted = errors.New("gpuview: window deleted")
)

// errNoCapability reports a host that returned a nil capability without an error.
var errNoCapability = errors.New("capability unavailable")
