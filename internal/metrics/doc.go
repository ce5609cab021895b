// Package metrics provides lock-free counters for authgate observability.
//
// # Design
//
// Counters live in a fixed array of uint64 slots incremented atomically.
// The write path is allocation-free; [Metrics.Snapshot] deep-copies the
// current values for exporters.
//
// # Architecture boundaries
//
// This package owns metric storage and snapshot creation. Metric export
// (Prometheus, OTel) lives in metrics/export/ and reads Snapshot values.
//
// # What this package must NOT do
//
//   - Perform I/O or network calls.
//   - Import authgate or any sibling package.
//   - Expose global metric registries.
package metrics
