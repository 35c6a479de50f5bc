// Package credstore provides durable storage for the session's bearer
// token and serialized identity.
//
// Three implementations ship with the module: [Memory] for tests, [File]
// for desktop clients persisting to the local filesystem, and [Redis] for
// deployments sharing credentials through a Redis instance. All three keep
// the token and identity slots in lockstep: saves and clears are atomic,
// so a process restart never observes one slot without the other.
package credstore
