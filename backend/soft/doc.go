// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft provides a headless CPU backend for gpuview.
//
// The soft host hands out an in-memory device whose queue replays the
// clears recorded by render passes into an *image.RGBA canvas. It needs no
// GPU and no window system, which makes it the backend of choice for tests,
// CI and the gpuview CLI.
//
//	host := soft.NewHost()
//	w := gpuview.New(
//		gpuview.WithHost(host),
//		gpuview.WithCanvas(host.Canvas()),
//	)
//
// The package also ships soft implementations of the window's DOM-side
// collaborators: Container, Background (a gpuview.FrameSink) and Stream
// (a loopback gpuview.ViewStream).
//
// Shaders are compiled with naga unless WithCompiler overrides it.
package soft
