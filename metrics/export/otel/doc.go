// Package otel provides OpenTelemetry metric exporter bindings for the
// session's counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// counter and Int64ObservableGauge instruments per histogram bucket. A
// single callback reads [deskauth.Session.MetricsSnapshot] on each
// collection cycle. Callers own the MeterProvider and supply the Meter.
package otel
