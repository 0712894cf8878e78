// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a gpuview backend on the gogpu/wgpu HAL.
//
// The window RECEIVES its device from the host application: the host
// passes a gpucontext.DeviceProvider whose HalDevice() and HalQueue()
// return hal.Device and hal.Queue. Command encoders, textures and queue
// submission go straight to the HAL; shaders are compiled with naga.
//
//	host, err := wgpu.NewHost(provider)
//	if err != nil {
//		return err
//	}
//	w := gpuview.New(
//		gpuview.WithHost(host),
//		gpuview.WithCanvas(host.Canvas()),
//	)
//
// The canvas is an off-screen BGRA8 render target. Snapshot copies it to a
// staging buffer and waits for the GPU, frame submission does not.
package wgpu
