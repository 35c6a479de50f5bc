// Package metrics implements the in-process counters and the login latency
// histogram. The root package re-exports the public surface and the
// exporters under metrics/export read its snapshots.
package metrics
