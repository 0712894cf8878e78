// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shadercache compiles WGSL shaders to SPIR-V and memoizes the
// resulting modules.
//
// A Cache is bound once to the window that owns the shader compiler:
//
//	sc := shadercache.New(64)
//	sc.SetContext(window)
//	words, err := sc.Module(wgsl)
package shadercache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/gogpu/naga"

	"github.com/gogpu/gpuview/internal/cache"
)

// DefaultLimit is the soft limit used when New is given 0.
const DefaultLimit = 128

var (
	// ErrNoContext is returned by Module before SetContext.
	ErrNoContext = errors.New("shadercache: no context")

	// ErrInvalidSPIRV is returned when a compiler emits a byte count that
	// is not a whole number of 32-bit words.
	ErrInvalidSPIRV = errors.New("shadercache: invalid SPIR-V length")
)

// Compiler compiles WGSL source to SPIR-V bytes.
type Compiler interface {
	Compile(wgsl string) ([]byte, error)
}

// Context is the owner of the shader compiler, typically a render window.
type Context interface {
	ShaderCompiler() Compiler
}

// NagaCompiler compiles WGSL with github.com/gogpu/naga.
type NagaCompiler struct{}

// Compile implements Compiler.
func (NagaCompiler) Compile(wgsl string) ([]byte, error) {
	return naga.Compile(wgsl)
}

// Cache memoizes compiled modules keyed by a hash of their source.
type Cache struct {
	mu  sync.RWMutex
	ctx Context

	modules *cache.Cache[uint64, []uint32]
}

// New creates a cache holding about limit modules.
// A limit of 0 selects DefaultLimit.
func New(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Cache{modules: cache.New[uint64, []uint32](limit)}
}

// SetContext binds the cache to its owner. Rebinding drops every module
// since they were compiled for another device.
func (c *Cache) SetContext(ctx Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx != nil && c.ctx != ctx {
		c.modules.Clear()
	}
	c.ctx = ctx
}

// Context returns the bound owner, or nil.
func (c *Cache) Context() Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ctx
}

// Module returns the SPIR-V words for source, compiling on first use.
// Compilation errors are not cached.
func (c *Cache) Module(source string) ([]uint32, error) {
	key := hashSource(source)
	if words, ok := c.modules.Get(key); ok {
		return words, nil
	}

	ctx := c.Context()
	if ctx == nil {
		return nil, ErrNoContext
	}
	compiler := ctx.ShaderCompiler()
	if compiler == nil {
		return nil, ErrNoContext
	}

	spirv, err := compiler.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shadercache: compile: %w", err)
	}
	words, err := toWords(spirv)
	if err != nil {
		return nil, err
	}

	c.modules.Set(key, words)
	return words, nil
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	return c.modules.Len()
}

// Stats returns lookup statistics.
func (c *Cache) Stats() cache.Stats {
	return c.modules.Stats()
}

func hashSource(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// toWords converts little-endian SPIR-V bytes to 32-bit words.
func toWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}
