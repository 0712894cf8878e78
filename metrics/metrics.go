// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports window frame statistics to Prometheus.
//
// A Collector implements [gpuview.Observer]:
//
//	reg := prometheus.NewRegistry()
//	w := gpuview.New(gpuview.WithObserver(metrics.New(reg)))
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogpu/gpuview"
)

// Namespace prefixes every metric name.
const Namespace = "gpuview"

// FrameBuckets are the frame-duration histogram buckets in seconds,
// from sub-millisecond up to a quarter second.
var FrameBuckets = []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.125, 0.25}

// Collector records window lifecycle events as Prometheus metrics.
type Collector struct {
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	initFailures  *prometheus.CounterVec
	captures      *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
// New panics if the metrics are already registered with reg.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "frames_submitted_total",
			Help:      "Command buffers submitted by TraverseAllPasses.",
		}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time from encoder creation to submission.",
			Buckets:   FrameBuckets,
		}),
		initFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "initialization_failures_total",
			Help:      "Failed device bring-ups by stage.",
		}, []string{"stage"}),
		captures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "captures_resolved_total",
			Help:      "Captured frames emitted by image format.",
		}, []string{"format"}),
	}
}

// FrameSubmitted counts a frame and observes its duration.
func (c *Collector) FrameSubmitted(elapsed time.Duration) {
	c.frames.Inc()
	c.frameDuration.Observe(elapsed.Seconds())
}

// InitializationFailed counts a failed bring-up, labelled with the stage
// that failed.
func (c *Collector) InitializationFailed(err error) {
	c.initFailures.WithLabelValues(Stage(err)).Inc()
}

// CaptureResolved counts an emitted capture.
func (c *Collector) CaptureResolved(format string) {
	c.captures.WithLabelValues(format).Inc()
}

// Stage classifies an initialization error.
func Stage(err error) string {
	switch {
	case errors.Is(err, gpuview.ErrNoHost):
		return "host"
	case errors.Is(err, gpuview.ErrNoCanvas):
		return "canvas"
	default:
		return "device"
	}
}

var _ gpuview.Observer = (*Collector)(nil)
