package middleware

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// Transport is the credential middleware: an http.RoundTripper that
// attaches the installed bearer token and a request ID to every outgoing
// request, and watches responses for 401s.
//
// The token is installed and removed exclusively by session transitions
// (login success, logout, expiry teardown); the transport holds no other
// state. A 401 response invokes the unauthorized handler at most once per
// logical request when the request context carries a retry mark (see
// [WithRetryMark]), then the response is propagated unchanged so the
// caller can still surface the server's error payload.
type Transport struct {
	base http.RoundTripper

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// New creates a Transport over base. A nil base uses
// http.DefaultTransport.
func New(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base}
}

// SetToken installs the bearer token attached to subsequent requests.
func (t *Transport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// ClearToken removes the installed token. Requests go out unmodified.
func (t *Transport) ClearToken() {
	t.SetToken("")
}

// Token returns the currently installed token, or "".
func (t *Transport) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// SetUnauthorizedHandler installs the teardown hook invoked on a 401.
func (t *Transport) SetUnauthorizedHandler(fn func()) {
	t.mu.Lock()
	t.onUnauthorized = fn
	t.mu.Unlock()
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned
// before headers are added, per the RoundTripper contract.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if token := t.Token(); token != "" {
		clone.Header.Set(authorizationHeader, bearerPrefix+token)
	}
	if clone.Header.Get(requestIDHeader) == "" {
		clone.Header.Set(requestIDHeader, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && firstUnauthorized(req.Context()) {
		t.mu.RLock()
		fn := t.onUnauthorized
		t.mu.RUnlock()
		if fn != nil {
			fn()
		}
	}
	return resp, nil
}

// retryMark is the per-logical-request flag that keeps repeated 401s for
// the same request from triggering repeated teardowns.
type retryMark struct {
	handled atomic.Bool
}

type retryMarkKey struct{}

// WithRetryMark attaches a fresh retry mark to ctx. Every logical request
// should carry its own mark; re-marking an already marked context returns
// it unchanged so retries of the same request share the flag.
func WithRetryMark(ctx context.Context) context.Context {
	if _, ok := ctx.Value(retryMarkKey{}).(*retryMark); ok {
		return ctx
	}
	return context.WithValue(ctx, retryMarkKey{}, &retryMark{})
}

// firstUnauthorized reports whether this logical request has not yet been
// through expiry handling, and marks it handled. An unmarked request is
// always handled; it cannot loop because each unmarked attempt is a new
// logical request.
func firstUnauthorized(ctx context.Context) bool {
	mark, ok := ctx.Value(retryMarkKey{}).(*retryMark)
	if !ok {
		return true
	}
	return mark.handled.CompareAndSwap(false, true)
}
