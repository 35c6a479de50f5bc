package deskauth

import "errors"

var (
	// ErrAuthenticationRejected reports a login exchange refused by the
	// platform, or an exchange response missing the token or identity.
	ErrAuthenticationRejected = errors.New("authentication rejected")
	// ErrCredentialExpired reports a 401 on an authenticated request. The
	// session is torn down before this error reaches the caller.
	ErrCredentialExpired = errors.New("credential expired")
	// ErrIdentityFetchFailed reports a failed "who am I" request. It forces
	// the same teardown as an expired credential.
	ErrIdentityFetchFailed = errors.New("identity fetch failed")
	// ErrStorageInconsistent reports a half-written credential entry found
	// at initialization: a token without an identity or vice versa. Both
	// slots are discarded and the session starts unauthenticated.
	ErrStorageInconsistent = errors.New("credential storage inconsistent")
	// ErrUnknownCommand reports a dispatch action no store recognizes.
	// The dispatcher logs it and carries on; it is never fatal.
	ErrUnknownCommand = errors.New("unknown dispatch command")
	// ErrSessionNotReady reports an operation that needs an established
	// session state, such as a merge-update with no identity loaded.
	ErrSessionNotReady = errors.New("session not ready")
	// ErrCredentialStoreRequired is returned by [Builder.Build] when no
	// persistent credential store was configured.
	ErrCredentialStoreRequired = errors.New("credential store required")
)
