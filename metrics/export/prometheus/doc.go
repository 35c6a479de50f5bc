// Package prometheus renders the session's metrics in Prometheus text
// exposition format.
//
// [NewPrometheusExporter] accepts a [deskauth.Session] and exposes an
// [http.Handler]. Counter names are prefixed deskauth_*_total; the single
// histogram is deskauth_login_latency_seconds. Nothing is registered in a
// global Prometheus registry; callers mount the Handler themselves.
package prometheus
