// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	// ShaderStageVertex is the vertex stage.
	ShaderStageVertex ShaderStage = iota

	// ShaderStageFragment is the fragment stage.
	ShaderStageFragment

	// ShaderStageCompute is the compute stage.
	ShaderStageCompute
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

// Pipeline is a named GPU execution configuration reused across frames.
//
// Pipelines are created by Window.Pipeline and initialized exactly once
// with their window. Passes attach shader sources and a backend handle on
// first use and read them back on later frames.
type Pipeline struct {
	name   string
	window *Window

	mu      sync.Mutex
	sources map[ShaderStage]string
	handle  any
}

// NewPipeline creates an uninitialized pipeline. Most callers should use
// Window.Pipeline, which guarantees one instance per name.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		name:    name,
		sources: make(map[ShaderStage]string),
	}
}

// Initialize binds the pipeline to its window.
func (p *Pipeline) Initialize(w *Window) {
	p.window = w
}

// Name returns the pipeline's cache key.
func (p *Pipeline) Name() string {
	return p.name
}

// Window returns the window the pipeline was initialized with.
func (p *Pipeline) Window() *Window {
	return p.window
}

// SetShaderSource sets the WGSL source of a stage.
func (p *Pipeline) SetShaderSource(stage ShaderStage, wgsl string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources[stage] = wgsl
}

// ShaderSource returns the WGSL source of a stage.
func (p *Pipeline) ShaderSource(stage ShaderStage) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	src, ok := p.sources[stage]
	return src, ok
}

// ShaderModule returns the compiled SPIR-V for a stage through the
// window's shader cache.
func (p *Pipeline) ShaderModule(stage ShaderStage) ([]uint32, error) {
	src, ok := p.ShaderSource(stage)
	if !ok {
		return nil, fmt.Errorf("gpuview: pipeline %q has no %s shader", p.name, stage)
	}
	if p.window == nil {
		return nil, fmt.Errorf("gpuview: pipeline %q is not initialized", p.name)
	}
	return p.window.ShaderCache().Module(src)
}

// Handle returns the backend object attached with SetHandle.
func (p *Pipeline) Handle() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// SetHandle attaches a backend object (e.g. a compiled render pipeline).
func (p *Pipeline) SetHandle(h any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handle = h
}

// pipelineCache maps names to pipelines. It only grows until the window
// is deleted.
type pipelineCache struct {
	mu      sync.RWMutex
	entries map[string]*Pipeline

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Pipeline returns the pipeline registered under name, creating and
// initializing it on first lookup. Every call with the same name returns
// the same instance for the life of the window.
func (w *Window) Pipeline(name string) *Pipeline {
	c := &w.pipelines

	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.entries[name]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return p
	}
	c.mu.RUnlock()

	// Slow path: write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries[name]; ok {
		c.hits.Add(1)
		return p
	}

	p := NewPipeline(name)
	p.Initialize(w)
	c.entries[name] = p
	c.misses.Add(1)

	w.logger().Debug("gpuview: pipeline created", "name", name)
	return p
}

// Pipelines returns the names of the cached pipelines, sorted.
func (w *Window) Pipelines() []string {
	c := &w.pipelines
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PipelineStats returns pipeline cache hits and misses.
func (w *Window) PipelineStats() (hits, misses uint64) {
	return w.pipelines.hits.Load(), w.pipelines.misses.Load()
}

func (c *pipelineCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Pipeline)
}
