package deskauth

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ticketry/deskauth/notify"
)

// ActionSetNotification is the reserved dispatch key that forwards its
// payload to the notification store instead of the session.
const ActionSetNotification = "setSnackbar"

// authActionPrefix namespaces the dispatch commands that forward to session
// operations.
const authActionPrefix = "auth/"

// dispatchHandler is one bound session operation reachable through the shim.
type dispatchHandler func(ctx context.Context, payload any) (any, error)

// Dispatcher is the compatibility router for the platform's old string-keyed
// action bus. Legacy call sites dispatch "auth/<name>" commands and the
// reserved notification key; the table of forwardable operations is fixed at
// construction, and an unrecognized command is logged and reported as
// [ErrUnknownCommand] but never fails hard.
type Dispatcher struct {
	session *Session
	notify  *notify.Store
	actions map[string]dispatchHandler
}

// NewDispatcher creates a Dispatcher over the session and an optional
// notification store. With a nil store the reserved notification key is
// treated as an unknown command.
func NewDispatcher(session *Session, notifications *notify.Store) *Dispatcher {
	d := &Dispatcher{
		session: session,
		notify:  notifications,
	}
	d.actions = map[string]dispatchHandler{
		"login":          d.loginAction,
		"loginWithOAuth": d.oauthLoginAction,
		"logout":         d.logoutAction,
		"fetchUser":      d.fetchUserAction,
		"initializeAuth": d.initializeAction,
		"updateUser":     d.updateUserAction,
	}
	return d
}

// Dispatch routes a legacy command. Session commands return the underlying
// operation's result; an action no store recognizes returns
// [ErrUnknownCommand] after logging, leaving all state unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, payload any) (any, error) {
	if action == ActionSetNotification && d.notify != nil {
		return nil, d.setNotification(payload)
	}

	if name, ok := strings.CutPrefix(action, authActionPrefix); ok {
		if handler, ok := d.actions[name]; ok {
			return handler(ctx, payload)
		}
	}

	log.Printf("deskauth: action %q not found in any store", action)
	d.session.metrics.Inc(MetricUnknownCommand)
	d.session.emitAudit(ctx, auditUnknownCommand, false, "", map[string]string{"action": action})
	return nil, ErrUnknownCommand
}

func (d *Dispatcher) setNotification(payload any) error {
	switch p := payload.(type) {
	case notify.Notification:
		d.notify.Set(p)
	case *notify.Notification:
		if p == nil {
			return badPayload(ActionSetNotification, payload)
		}
		d.notify.Set(*p)
	case string:
		d.notify.Set(notify.Notification{Text: p})
	default:
		return badPayload(ActionSetNotification, payload)
	}
	return nil
}

func (d *Dispatcher) loginAction(ctx context.Context, payload any) (any, error) {
	credentials, ok := asValue[Credentials](payload)
	if !ok {
		return nil, badPayload("auth/login", payload)
	}
	return d.session.Login(ctx, credentials), nil
}

func (d *Dispatcher) oauthLoginAction(ctx context.Context, payload any) (any, error) {
	oauth, ok := asValue[OAuthPayload](payload)
	if !ok {
		return nil, badPayload("auth/loginWithOAuth", payload)
	}
	return d.session.LoginWithOAuth(ctx, oauth), nil
}

func (d *Dispatcher) logoutAction(ctx context.Context, _ any) (any, error) {
	d.session.Logout(ctx)
	return nil, nil
}

func (d *Dispatcher) fetchUserAction(ctx context.Context, _ any) (any, error) {
	return nil, d.session.FetchIdentity(ctx)
}

func (d *Dispatcher) initializeAction(ctx context.Context, _ any) (any, error) {
	return nil, d.session.Initialize(ctx)
}

func (d *Dispatcher) updateUserAction(ctx context.Context, payload any) (any, error) {
	patch, ok := asValue[IdentityPatch](payload)
	if !ok {
		return nil, badPayload("auth/updateUser", payload)
	}
	return nil, d.session.UpdateIdentity(ctx, patch)
}

// asValue accepts a payload passed either by value or by non-nil pointer.
func asValue[T any](payload any) (T, bool) {
	switch p := payload.(type) {
	case T:
		return p, true
	case *T:
		if p != nil {
			return *p, true
		}
	}
	var zero T
	return zero, false
}

func badPayload(action string, payload any) error {
	return fmt.Errorf("deskauth: action %q: unexpected payload type %T", action, payload)
}
