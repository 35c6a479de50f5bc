// Package deskauth is the session and access-control client for a
// multi-tenant support-ticket platform.
//
// It owns the authenticated session of a single user: establishing it
// through the platform's login and OAuth exchange endpoints, persisting it
// across process restarts through a pluggable credential store, attaching
// the bearer token to outbound requests, tearing the session down when the
// platform reports an expired credential, and answering route-permission
// queries for the navigation layer.
//
// Construct a [Session] through the [Builder]:
//
//	sess, err := deskauth.New().
//		WithFileStore(path).
//		WithNavigator(nav).
//		Build()
//	if err != nil {
//		// ...
//	}
//	defer sess.Close()
//	_ = sess.Initialize(ctx)
//
// The [Dispatcher] preserves the string-keyed action bus that predates this
// package; new call sites should invoke [Session] methods directly.
package deskauth
