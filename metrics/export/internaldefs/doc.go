// Package internaldefs holds the stable metric name and bucket definitions
// shared by the exporter implementations, so the Prometheus and OTel
// exporters can never disagree on a metric name or a bound.
//
// It must not import the exporter packages and performs no I/O.
package internaldefs
