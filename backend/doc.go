// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable registry of GPU capability providers.
//
// A Backend bundles the gpuview.Host a window acquires its adapter, device
// and shader compiler from with the canvas it presents into.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The soft backend registers itself on import:
//
//	import _ "github.com/gogpu/gpuview/backend/soft"
//
// The wgpu backend needs a device from the host application and is
// registered explicitly:
//
//	backend.Register(backend.NameWGPU, wgpu.Factory(provider, wgpu.WithCanvasSize(800, 600)))
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b, err := backend.Get("soft")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	w := gpuview.New(backend.Options(b)...)
package backend
