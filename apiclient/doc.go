// Package apiclient implements the platform's authentication exchange:
// the password login, the OAuth login, and the "who am I" request. It
// deals only in raw tokens and serialized identities; interpreting them is
// the session's job.
package apiclient
