package deskauth

import (
	internalmetrics "github.com/ticketry/deskauth/internal/metrics"
)

// Metric identifiers for the session's counters and histograms.
const (
	MetricLoginSuccess           = internalmetrics.MetricLoginSuccess
	MetricLoginFailure           = internalmetrics.MetricLoginFailure
	MetricOAuthLoginSuccess      = internalmetrics.MetricOAuthLoginSuccess
	MetricOAuthLoginFailure      = internalmetrics.MetricOAuthLoginFailure
	MetricLogout                 = internalmetrics.MetricLogout
	MetricCredentialExpired      = internalmetrics.MetricCredentialExpired
	MetricIdentityRefreshSuccess = internalmetrics.MetricIdentityRefreshSuccess
	MetricIdentityRefreshFailure = internalmetrics.MetricIdentityRefreshFailure
	MetricIdentityUpdated        = internalmetrics.MetricIdentityUpdated
	MetricSessionHydrated        = internalmetrics.MetricSessionHydrated
	MetricStorageInconsistency   = internalmetrics.MetricStorageInconsistency
	MetricUnknownCommand         = internalmetrics.MetricUnknownCommand
	MetricLoginLatency           = internalmetrics.MetricLoginLatency
)

// NewMetrics creates the in-process metrics for the given configuration.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
