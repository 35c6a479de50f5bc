// Package middleware implements the two request-pipeline hooks of the
// session client: the outbound hook that attaches the bearer credential
// and a request ID, and the inbound hook that detects credential expiry
// and triggers session teardown.
package middleware
