package deskauth

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/ticketry/deskauth/apiclient"
	"github.com/ticketry/deskauth/credstore"
	"github.com/ticketry/deskauth/middleware"
)

// Builder assembles a [Session]. Configure it with the With methods, then
// call Build once; a Builder cannot be reused.
type Builder struct {
	config Config

	store       credstore.Store
	redisClient *redis.Client
	filePath    string

	baseTransport http.RoundTripper
	navigator     Navigator
	auditSink     AuditSink

	built bool
}

// New creates a Builder starting from [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the persistent credential store directly. It takes
// precedence over WithRedis and WithFileStore.
func (b *Builder) WithStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithRedis backs the credential store with a Redis client, using the
// configured storage keys.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redisClient = client
	return b
}

// WithFileStore backs the credential store with a single JSON file at path.
func (b *Builder) WithFileStore(path string) *Builder {
	b.filePath = path
	return b
}

// WithBaseTransport sets the http.RoundTripper the credential middleware
// wraps. Nil means http.DefaultTransport.
func (b *Builder) WithBaseTransport(rt http.RoundTripper) *Builder {
	b.baseTransport = rt
	return b
}

// WithNavigator installs the navigation layer that receives redirect
// signals. Nil means redirects are dropped.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithAuditSink enables auditing and installs the sink events are delivered
// to.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.config.Audit.Enabled = true
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the login latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and assembles the session: the
// credential middleware over the base transport, the HTTP client, the
// exchange client, and the resolved credential store. Without any store
// configured it returns [ErrCredentialStoreRequired].
func (b *Builder) Build() (*Session, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil && b.redisClient != nil {
		store = credstore.NewRedis(b.redisClient, credstore.Keys{
			Token:    cfg.Storage.TokenKey,
			Identity: cfg.Storage.IdentityKey,
		})
	}
	if store == nil && b.filePath != "" {
		store = credstore.NewFile(b.filePath)
	}
	if store == nil {
		return nil, ErrCredentialStoreRequired
	}

	nav := b.navigator
	if nav == nil {
		nav = NopNavigator{}
	}

	transport := middleware.New(b.baseTransport)
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.Client.Timeout,
	}

	session := &Session{
		cfg:       cfg,
		store:     store,
		transport: transport,
		api:       apiclient.New(cfg.Client.BaseURL, httpClient),
		http:      httpClient,
		nav:       nav,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
	}
	transport.SetUnauthorizedHandler(session.expireCredentials)

	b.built = true

	return session, nil
}
