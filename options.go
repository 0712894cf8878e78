// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

// Option configures a Window during creation.
//
// Example:
//
//	w := gpuview.New(
//	    gpuview.WithSize(800, 600),
//	    gpuview.WithHost(host),
//	    gpuview.WithCanvas(canvas),
//	)
type Option func(*options)

// options holds optional configuration for Window creation.
type options struct {
	width, height int
	host          Host
	canvas        Canvas
	renderable    Renderable
	passes        []RenderPass
	passesSet     bool
	observer      Observer
	shaderCache   ShaderCache
	sink          FrameSink
	imageFormat   string
}

// Default window configuration.
const (
	// DefaultWidth is the window width used when WithSize is not given.
	DefaultWidth = 300

	// DefaultHeight is the window height used when WithSize is not given.
	DefaultHeight = 300

	// DefaultImageFormat is the capture format used when none is requested.
	DefaultImageFormat = "image/png"

	// DefaultCursor is the container cursor style.
	DefaultCursor = "pointer"
)

func defaultOptions() options {
	return options{
		width:       DefaultWidth,
		height:      DefaultHeight,
		imageFormat: DefaultImageFormat,
	}
}

// WithSize sets the initial window size in pixels.
// Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithHost sets the provider of GPU capabilities.
func WithHost(h Host) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithCanvas sets the presentation canvas.
func WithCanvas(c Canvas) Option {
	return func(o *options) {
		o.canvas = c
	}
}

// WithRenderable sets the scene-graph object whose renderers the window draws.
func WithRenderable(r Renderable) Option {
	return func(o *options) {
		o.renderable = r
	}
}

// WithRenderPasses replaces the default forward pass with the given passes.
// Passing no passes leaves the window with an empty pass list.
func WithRenderPasses(passes ...RenderPass) Option {
	return func(o *options) {
		o.passes = passes
		o.passesSet = true
	}
}

// WithObserver installs a frame observer, typically a metrics collector.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithShaderCache replaces the default shader cache.
func WithShaderCache(c ShaderCache) Option {
	return func(o *options) {
		o.shaderCache = c
	}
}

// WithFrameSink sets the background-image sink used by remote view streams.
func WithFrameSink(s FrameSink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithImageFormat sets the default capture format.
func WithImageFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.imageFormat = format
		}
	}
}
