// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuview

import "sync"

// Subscription is returned by event registration methods.
type Subscription interface {
	// Unsubscribe removes the listener. It is idempotent.
	Unsubscribe()
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() { f() }

// signal is a list of listeners invoked synchronously in registration order.
// Listeners may unsubscribe themselves, or others, while being invoked.
type signal[T any] struct {
	mu        sync.Mutex
	next      uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

func (s *signal[T]) subscribe(fn func(T)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(func() { s.remove(id) })
	})
}

func (s *signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// emit invokes a snapshot of the listeners without holding the lock.
func (s *signal[T]) emit(v T) {
	s.mu.Lock()
	snapshot := make([]listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

func (s *signal[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
