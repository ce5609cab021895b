package authgate

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tkondic/authgate/internal/rate"
	"github.com/tkondic/authgate/jwt"
	"github.com/tkondic/authgate/password"
	"github.com/tkondic/authgate/store/redisstore"
)

// Builder assembles an [Engine]. Builders are configured during
// initialization, consumed exactly once by [Builder.Build], and are not
// safe for concurrent use.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	accounts  AccountStore
	attempts  AttemptStore
	auditSink AuditSink

	built bool
}

// New returns a builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the entire configuration. The config is cloned, so
// later mutation of cfg by the caller does not reach the engine.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the Redis client backing the default attempt store.
// Not needed when [Builder.WithAttemptStore] provides a store directly.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAccountStore supplies the credential store. Required.
func (b *Builder) WithAccountStore(store AccountStore) *Builder {
	b.accounts = store
	return b
}

// WithAttemptStore overrides the failed-attempt counter store. When unset,
// Build constructs a Redis-backed store from the client given to
// [Builder.WithRedis].
func (b *Builder) WithAttemptStore(store AttemptStore) *Builder {
	b.attempts = store
	return b
}

// WithAuditSink supplies the destination for audit events. When unset and
// auditing is enabled, events are discarded by a no-op sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the stores, and returns a ready
// engine. A builder can build at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.accounts == nil {
		return nil, errors.New("account store required")
	}

	attempts := b.attempts
	if attempts == nil {
		if b.redis == nil {
			return nil, errors.New("redis client or attempt store required")
		}
		attempts = redisstore.NewAttemptStore(b.redis, cfg.RateLimit.Window)
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	jm, err := jwt.NewManager(jwt.Config{
		AccessTTL: cfg.Tokens.AccessTTL,
		Secret:    cloneBytes(cfg.Tokens.Secret),
		Issuer:    cfg.Tokens.Issuer,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:   cfg,
		accounts: b.accounts,
		limiter: rate.New(attempts, rate.Config{
			MaxAttempts: cfg.RateLimit.MaxAttempts,
			Window:      cfg.RateLimit.Window,
		}),
		hasher: hasher,
		issuer: &tokenIssuer{jwt: jm, accessTTL: cfg.Tokens.AccessTTL},
		audit:  newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(MetricsConfig{
			Enabled: cfg.Metrics.Enabled,
		}),
	}

	b.built = true

	return engine, nil
}
