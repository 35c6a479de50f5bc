package deskauth

import (
	"errors"
	"net/url"
	"time"
)

// Config defines the session client's configuration. Configure it before
// [Builder.Build]; it is treated as immutable afterwards.
type Config struct {
	Client  ClientConfig
	Storage StorageConfig
	Routes  RouteConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// ClientConfig configures the HTTP client for the authentication exchange
// and every other platform request routed through the session's transport.
type ClientConfig struct {
	// BaseURL is the platform API root, e.g. "https://desk.example.com/api".
	BaseURL string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
}

// StorageConfig names the two slots of the persistent credential store:
// the raw bearer token and the JSON-serialized identity. The two are always
// written and cleared together.
type StorageConfig struct {
	TokenKey    string
	IdentityKey string
}

// RouteConfig is the redirect table. After a successful login the session
// signals the navigation layer with the destination matching the identity's
// role; logout and credential expiry signal Login.
type RouteConfig struct {
	Admin        string
	Support      string
	TicketSubmit string
	Login        string
}

// AuditConfig configures the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is full.
	// Dropped events are counted and reported by [Session.AuditDropped].
	DropIfFull bool
}

// MetricsConfig configures the in-process metrics.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Client: ClientConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			TokenKey:    "token",
			IdentityKey: "user",
		},
		Routes: RouteConfig{
			Admin:        "/admin",
			Support:      "/support",
			TicketSubmit: "/submit-ticket",
			Login:        "/login",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// DefaultConfig returns the configuration the [Builder] starts from.
func DefaultConfig() Config { return defaultConfig() }

// Validate checks the configuration for values Build cannot work with.
func (c Config) Validate() error {
	if c.Client.BaseURL == "" {
		return errors.New("Client.BaseURL must be set")
	}
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("Client.BaseURL must be an absolute URL")
	}
	if c.Client.Timeout < 0 {
		return errors.New("Client.Timeout must not be negative")
	}
	if c.Storage.TokenKey == "" || c.Storage.IdentityKey == "" {
		return errors.New("Storage keys must be set")
	}
	if c.Storage.TokenKey == c.Storage.IdentityKey {
		return errors.New("Storage token and identity keys must differ")
	}
	if c.Routes.Admin == "" || c.Routes.Support == "" ||
		c.Routes.TicketSubmit == "" || c.Routes.Login == "" {
		return errors.New("Routes destinations must be set")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}
