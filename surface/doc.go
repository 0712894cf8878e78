// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides pixel-addressable drawing surfaces.
//
// A Surface is a CPU-side image the window can read back, clear, and blit
// other images into. gpuview uses surfaces for:
//
//   - Scratch buffers when compositing a captured frame with the nested
//     overlay surfaces of view props
//   - Presentation storage in the headless soft backend
//
// # Surface Types
//
//   - ImageSurface: CPU-based surface backed by *image.RGBA, compositing
//     through golang.org/x/image/draw
//
// # Thread Safety
//
// Surfaces are not thread-safe. Use one surface per goroutine.
package surface
