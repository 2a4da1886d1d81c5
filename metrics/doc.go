// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus metrics for request latency and judging
// activity. Collector implements judging.Recorder.
package metrics
