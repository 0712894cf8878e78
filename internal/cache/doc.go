// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic LRU cache with a soft limit.
//
//	c := cache.New[uint64, []uint32](64)
//	c.Set(key, words)
//	words, ok := c.Get(key)
//
// The shader cache uses it to memoize compiled SPIR-V modules.
// Cache is safe for concurrent use and must not be copied after creation.
package cache
