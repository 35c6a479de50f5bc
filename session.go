package deskauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ticketry/deskauth/apiclient"
	"github.com/ticketry/deskauth/credstore"
	"github.com/ticketry/deskauth/middleware"
	"github.com/ticketry/deskauth/token"
)

// Error messages surfaced when the platform rejects an exchange without a
// detail message of its own.
const (
	loginFallbackMessage = "Login failed. Please check your credentials."
	oauthFallbackMessage = "Third-party login failed. Please try again later."
)

// Session is the single owner of the session record: the bearer token, the
// identity, and the authenticated, busy and last-error flags. Every
// transition keeps the record, the persistent credential store, and the
// credential middleware's outbound token in step, so that for every
// reachable state authenticated equals token-present, and a present token
// implies a present identity.
//
// Construct a Session through [Builder.Build]. All methods are safe for
// concurrent use.
type Session struct {
	cfg       Config
	store     credstore.Store
	transport *middleware.Transport
	api       *apiclient.Client
	http      *http.Client
	nav       Navigator
	audit     *auditDispatcher
	metrics   *Metrics

	mu            sync.Mutex
	token         string
	identity      *Identity
	authenticated bool
	lastError     string
	busy          bool
}

// exchangeKind parameterizes the two login exchanges; their state
// transitions are identical.
type exchangeKind struct {
	fallback      string
	successEvent  string
	failureEvent  string
	successMetric MetricID
	failureMetric MetricID
}

var (
	passwordExchange = exchangeKind{
		fallback:      loginFallbackMessage,
		successEvent:  auditLoginSuccess,
		failureEvent:  auditLoginFailure,
		successMetric: MetricLoginSuccess,
		failureMetric: MetricLoginFailure,
	}
	oauthExchange = exchangeKind{
		fallback:      oauthFallbackMessage,
		successEvent:  auditOAuthLoginSuccess,
		failureEvent:  auditOAuthLoginFailure,
		successMetric: MetricOAuthLoginSuccess,
		failureMetric: MetricOAuthLoginFailure,
	}
)

// Login performs the password login exchange. On success the session record
// and the credential store hold the new token and identity, the outbound
// token is installed, and the navigation layer is signalled with the
// role-based destination. On failure all credential state is cleared, the
// server's detail message (or the generic fallback) is stored as the last
// error, and Login reports false. The busy flag is set for the duration of
// the call.
func (s *Session) Login(ctx context.Context, credentials Credentials) bool {
	return s.exchange(ctx, passwordExchange, func() (string, json.RawMessage, error) {
		return s.api.Login(ctx, credentials)
	})
}

// LoginWithOAuth performs the OAuth login exchange. Same contract as
// [Session.Login].
func (s *Session) LoginWithOAuth(ctx context.Context, payload OAuthPayload) bool {
	return s.exchange(ctx, oauthExchange, func() (string, json.RawMessage, error) {
		return s.api.OAuthLogin(ctx, payload)
	})
}

func (s *Session) exchange(ctx context.Context, kind exchangeKind, call func() (string, json.RawMessage, error)) bool {
	s.setBusy(true)
	defer s.setBusy(false)

	start := time.Now()
	access, rawIdentity, err := call()
	s.metrics.Observe(MetricLoginLatency, time.Since(start))

	if err != nil {
		return s.failExchange(ctx, kind, err)
	}
	if access == "" || len(rawIdentity) == 0 {
		return s.failExchange(ctx, kind, ErrAuthenticationRejected)
	}
	var identity Identity
	if err := json.Unmarshal(rawIdentity, &identity); err != nil {
		return s.failExchange(ctx, kind, fmt.Errorf("%w: decode identity: %v", ErrAuthenticationRejected, err))
	}

	if err := s.store.Save(ctx, credstore.Entry{Token: access, Identity: rawIdentity}); err != nil {
		log.Printf("deskauth: persist credentials: %v", err)
	}

	s.mu.Lock()
	s.token = access
	s.identity = &identity
	s.authenticated = true
	s.lastError = ""
	s.mu.Unlock()

	s.transport.SetToken(access)
	s.metrics.Inc(kind.successMetric)
	s.emitAudit(ctx, kind.successEvent, true, "", nil)
	s.nav.Navigate(s.redirectForRole(&identity))
	return true
}

// failExchange is the single failure path for both exchanges: no credential
// state survives a failed attempt, not even state left over from a prior
// session.
func (s *Session) failExchange(ctx context.Context, kind exchangeKind, cause error) bool {
	message := kind.fallback
	var apiErr *apiclient.APIError
	if errors.As(cause, &apiErr) && apiErr.Detail != "" {
		message = apiErr.Detail
	}

	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.authenticated = false
	s.lastError = message
	s.mu.Unlock()

	s.transport.ClearToken()
	if err := s.store.Clear(ctx); err != nil {
		log.Printf("deskauth: clear credential store: %v", err)
	}

	s.metrics.Inc(kind.failureMetric)
	s.emitAudit(ctx, kind.failureEvent, false, cause.Error(), nil)
	return false
}

// Logout unconditionally resets the session record, clears the credential
// store, removes the outbound token, and signals the navigation layer to go
// to the login screen. Calling it when already logged out is a no-op on
// state.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.authenticated = false
	s.lastError = ""
	s.mu.Unlock()

	s.transport.ClearToken()
	if err := s.store.Clear(ctx); err != nil {
		log.Printf("deskauth: clear credential store: %v", err)
	}

	s.metrics.Inc(MetricLogout)
	s.emitAudit(ctx, auditLogout, true, "", nil)
	s.nav.Navigate(s.cfg.Routes.Login)
}

// FetchIdentity refreshes the identity from the platform. Without a token
// it behaves as [Session.Logout] and reports [ErrSessionNotReady]. A failed
// fetch is treated like an expired credential: the session is torn down and
// [ErrIdentityFetchFailed] is returned.
func (s *Session) FetchIdentity(ctx context.Context) error {
	if s.Token() == "" {
		s.Logout(ctx)
		return ErrSessionNotReady
	}

	rawIdentity, err := s.api.Me(ctx)
	if err == nil {
		var identity Identity
		if uerr := json.Unmarshal(rawIdentity, &identity); uerr != nil {
			err = fmt.Errorf("decode identity: %w", uerr)
		} else {
			s.mu.Lock()
			s.identity = &identity
			s.mu.Unlock()

			if serr := s.store.SaveIdentity(ctx, rawIdentity); serr != nil {
				log.Printf("deskauth: persist identity: %v", serr)
			}
			s.metrics.Inc(MetricIdentityRefreshSuccess)
			s.emitAudit(ctx, auditIdentityRefreshed, true, "", nil)
			return nil
		}
	}

	s.metrics.Inc(MetricIdentityRefreshFailure)
	s.emitAudit(ctx, auditIdentityRefreshFailed, false, err.Error(), nil)
	s.Logout(ctx)
	return fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
}

// Initialize hydrates the session from the credential store. It is meant to
// run once at process start. A complete stored entry restores the session
// and installs the outbound token; an empty store leaves a clean logged-out
// state; a half-written entry is discarded, the session starts
// unauthenticated, and [ErrStorageInconsistent] is returned.
func (s *Session) Initialize(ctx context.Context) error {
	entry, err := s.store.Load(ctx)
	if err != nil {
		s.Logout(ctx)
		return fmt.Errorf("load credentials: %w", err)
	}

	if entry.Empty() {
		s.Logout(ctx)
		return nil
	}
	if !entry.Complete() {
		s.metrics.Inc(MetricStorageInconsistency)
		s.emitAudit(ctx, auditStorageInconsistent, false, ErrStorageInconsistent.Error(), nil)
		s.Logout(ctx)
		return ErrStorageInconsistent
	}

	var identity Identity
	if err := json.Unmarshal(entry.Identity, &identity); err != nil {
		s.metrics.Inc(MetricStorageInconsistency)
		s.emitAudit(ctx, auditStorageInconsistent, false, err.Error(), nil)
		s.Logout(ctx)
		return fmt.Errorf("%w: decode identity: %v", ErrStorageInconsistent, err)
	}

	s.mu.Lock()
	s.token = entry.Token
	s.identity = &identity
	s.authenticated = true
	s.lastError = ""
	s.mu.Unlock()

	s.transport.SetToken(entry.Token)
	s.metrics.Inc(MetricSessionHydrated)
	s.emitAudit(ctx, auditSessionHydrated, true, "", nil)
	return nil
}

// UpdateIdentity shallow-merges the patch into the current identity and
// re-persists it. The token and the authenticated flag are untouched.
// Without a loaded identity it reports [ErrSessionNotReady].
func (s *Session) UpdateIdentity(ctx context.Context, patch IdentityPatch) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrSessionNotReady
	}
	updated := *s.identity
	patch.apply(&updated)
	s.identity = &updated
	s.mu.Unlock()

	rawIdentity, err := json.Marshal(&updated)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.SaveIdentity(ctx, rawIdentity); err != nil {
		log.Printf("deskauth: persist identity: %v", err)
	}

	s.metrics.Inc(MetricIdentityUpdated)
	s.emitAudit(ctx, auditIdentityUpdated, true, "", nil)
	return nil
}

// expireCredentials is the middleware's unauthorized hook: a 401 on an
// authenticated request tears the session down. The audit event is emitted
// before the record is cleared so it still names the expired identity.
func (s *Session) expireCredentials() {
	ctx := context.Background()
	s.metrics.Inc(MetricCredentialExpired)
	s.emitAudit(ctx, auditCredentialExpired, false, ErrCredentialExpired.Error(), nil)
	s.Logout(ctx)
}

func (s *Session) setBusy(v bool) {
	s.mu.Lock()
	s.busy = v
	s.mu.Unlock()
}

func (s *Session) redirectForRole(id *Identity) string {
	switch {
	case id.HasAdminAccess():
		return s.cfg.Routes.Admin
	case id.IsSupport():
		return s.cfg.Routes.Support
	default:
		return s.cfg.Routes.TicketSubmit
	}
}

func cloneIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	out := *id
	if id.Company != nil {
		company := *id.Company
		out.Company = &company
	}
	return &out
}

// Snapshot returns a point-in-time copy of the session record.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Token:         s.token,
		Identity:      cloneIdentity(s.identity),
		Authenticated: s.authenticated,
		LastError:     s.lastError,
		Busy:          s.busy,
	}
}

// Token returns the current bearer token, or "".
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns a copy of the current identity, or nil.
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIdentity(s.identity)
}

// Authenticated reports whether the session holds a credential.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LastError returns the message stored by the most recent failed exchange.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Busy reports whether a login exchange is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Client returns the HTTP client carrying the credential middleware. The
// application routes its other platform requests through it so they pick up
// the bearer token and the expiry teardown.
func (s *Session) Client() *http.Client {
	return s.http
}

// TokenExpiresAt returns the advisory expiry of the current token. It
// reports false for an absent or opaque token and for tokens without an
// expiry claim.
func (s *Session) TokenExpiresAt() (time.Time, bool) {
	raw := s.Token()
	if raw == "" {
		return time.Time{}, false
	}
	info, err := token.Introspect(raw)
	if err != nil || info.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return info.ExpiresAt, true
}

// CheckRoutePermission evaluates the route guard against the current
// session state.
func (s *Session) CheckRoutePermission(desc RoutePermission) bool {
	return CheckRoutePermission(desc, s.Snapshot())
}

// MetricsSnapshot returns a deep copy of the session's metrics.
func (s *Session) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// AuditDropped returns how many audit events were discarded under
// DropIfFull.
func (s *Session) AuditDropped() uint64 {
	return s.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The session itself holds no
// other background state.
func (s *Session) Close() {
	s.audit.Close()
}
