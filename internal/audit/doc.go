// Package audit defines the audit event model and the sinks shared by the
// root package and external consumers. The root package re-exports the
// public surface; import this package only from inside the module.
package audit
