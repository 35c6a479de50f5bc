package internaldefs

import (
	deskauth "github.com/ticketry/deskauth"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   deskauth.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   deskauth.MetricID
	Name string
	Help string
}

// CounterDefs is the stable list of exported counters.
var CounterDefs = []CounterDef{
	{ID: deskauth.MetricLoginSuccess, Name: "deskauth_login_success_total", Help: "Successful password logins."},
	{ID: deskauth.MetricLoginFailure, Name: "deskauth_login_failure_total", Help: "Failed password logins."},
	{ID: deskauth.MetricOAuthLoginSuccess, Name: "deskauth_oauth_login_success_total", Help: "Successful OAuth logins."},
	{ID: deskauth.MetricOAuthLoginFailure, Name: "deskauth_oauth_login_failure_total", Help: "Failed OAuth logins."},
	{ID: deskauth.MetricLogout, Name: "deskauth_logout_total", Help: "Logout operations."},
	{ID: deskauth.MetricCredentialExpired, Name: "deskauth_credential_expired_total", Help: "Session teardowns triggered by a 401 response."},
	{ID: deskauth.MetricIdentityRefreshSuccess, Name: "deskauth_identity_refresh_success_total", Help: "Successful identity fetches."},
	{ID: deskauth.MetricIdentityRefreshFailure, Name: "deskauth_identity_refresh_failure_total", Help: "Failed identity fetches."},
	{ID: deskauth.MetricIdentityUpdated, Name: "deskauth_identity_updated_total", Help: "Merge-updates applied to the identity."},
	{ID: deskauth.MetricSessionHydrated, Name: "deskauth_session_hydrated_total", Help: "Sessions restored from the credential store."},
	{ID: deskauth.MetricStorageInconsistency, Name: "deskauth_storage_inconsistency_total", Help: "Half-written credential entries discarded at initialization."},
	{ID: deskauth.MetricUnknownCommand, Name: "deskauth_unknown_command_total", Help: "Dispatch actions no store recognized."},
}

// HistogramDefs is the stable list of exported histograms.
var HistogramDefs = []HistogramDef{
	{ID: deskauth.MetricLoginLatency, Name: "deskauth_login_latency_seconds", Help: "Login exchange latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, Prometheus style.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds as instrument-name-safe suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
