// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import "time"

// Observer receives frame lifecycle notifications from a Window.
// Methods are called synchronously on the driving goroutine and must not
// block. The metrics package provides a Prometheus implementation.
type Observer interface {
	// FrameSubmitted is called after a command buffer was submitted.
	FrameSubmitted(elapsed time.Duration)

	// InitializationFailed is called when device bring-up fails.
	InitializationFailed(err error)

	// CaptureResolved is called when a captured image was emitted.
	CaptureResolved(format string)
}

type nopObserver struct{}

func (nopObserver) FrameSubmitted(time.Duration) {}
func (nopObserver) InitializationFailed(error)   {}
func (nopObserver) CaptureResolved(string)       {}
