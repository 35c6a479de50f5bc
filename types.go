package deskauth

import (
	"io"

	internalaudit "github.com/ticketry/deskauth/internal/audit"
	internalmetrics "github.com/ticketry/deskauth/internal/metrics"
)

// Role classifies an identity for authorization decisions. The platform
// defines four roles; an absent role is treated as customer, and unknown
// roles match no staff predicate.
type Role string

const (
	// RoleCustomer is the default role for company users submitting tickets.
	RoleCustomer Role = "customer"
	// RoleSupport is the first-line technical support role.
	RoleSupport Role = "support"
	// RoleTechnicalSupportAdmin administers the support organization.
	RoleTechnicalSupportAdmin Role = "technical_support_admin"
	// RoleSystemAdmin administers the whole platform.
	RoleSystemAdmin Role = "system_admin"
)

// Company is the tenant a customer identity belongs to. Technical staff
// identities carry no company.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// Identity is the authenticated user's profile as returned by the platform.
// It is owned by the Session and mutated only through [Session.FetchIdentity]
// and [Session.UpdateIdentity].
type Identity struct {
	ID       int64    `json:"id"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	Role     Role     `json:"role,omitempty"`
	Company  *Company `json:"company,omitempty"`
}

// Credentials is the request body for the password login exchange.
type Credentials struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password"`
	CompanyCode string `json:"company_code,omitempty"`
}

// OAuthPayload is the request body for the OAuth login exchange. It carries
// the provider callback data collected by the navigation layer.
type OAuthPayload struct {
	Provider    string `json:"provider"`
	Code        string `json:"code"`
	State       string `json:"state,omitempty"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// IdentityPatch is a shallow merge-update applied by
// [Session.UpdateIdentity]. Nil fields leave the current value untouched.
type IdentityPatch struct {
	Username *string
	Email    *string
	Role     *Role
	Company  *Company
}

func (p IdentityPatch) apply(id *Identity) {
	if p.Username != nil {
		id.Username = *p.Username
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.Role != nil {
		id.Role = *p.Role
	}
	if p.Company != nil {
		c := *p.Company
		id.Company = &c
	}
}

// Snapshot is a point-in-time copy of the session record. The route guard
// and other read-only consumers work from snapshots so they never observe a
// partially applied transition.
type Snapshot struct {
	Token         string
	Identity      *Identity
	Authenticated bool
	LastError     string
	Busy          bool
}

// Navigator receives redirect signals from the session: the role-based
// destination after a successful login, and the login screen after logout
// or credential expiry. The navigation layer implements it.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(path string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// NopNavigator ignores all redirect signals.
type NopNavigator struct{}

// Navigate does nothing.
func (NopNavigator) Navigate(string) {}

// AuditEvent is a structured audit record emitted on session transitions.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the session's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a counter or histogram in the in-process metrics.
type MetricID = internalmetrics.MetricID

// Metrics holds atomic counters and an optional latency histogram.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot
