package authgate

import (
	"errors"
	"time"
)

// Config assembles every tunable of the engine. Instances are treated as
// immutable after [Builder.Build]; the builder clones them defensively.
type Config struct {
	RateLimit RateLimitConfig
	Tokens    TokenConfig
	Password  PasswordConfig
	Account   AccountConfig
	Audit     AuditConfig
	Metrics   MetricsConfig

	// StoreTimeout bounds every backing-store call. On expiry the engine
	// fails closed with ErrServerError.
	StoreTimeout time.Duration
}

// RateLimitConfig holds the lockout policy constants.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// TokenConfig holds token issuance parameters. Secret signs access tokens
// (HS256); refresh tokens are opaque and unsigned.
type TokenConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secret     []byte
	Issuer     string
}

// PasswordConfig holds the argon2id hashing parameters (memory in KB).
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// AccountConfig holds the defaults stamped onto accounts created by SignUp.
type AccountConfig struct {
	DefaultRole string
	DefaultPlan string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the canonical policy: 5 attempts per 15-minute
// window, 1-hour access tokens, 7-day refresh tokens.
func DefaultConfig() Config {
	return Config{
		RateLimit: RateLimitConfig{
			MaxAttempts: 5,
			Window:      15 * time.Minute,
		},
		Tokens: TokenConfig{
			AccessTTL:  time.Hour,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "authgate",
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Account: AccountConfig{
			DefaultRole: "user",
			DefaultPlan: "Unpaid",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		StoreTimeout: 3 * time.Second,
	}
}

// Validate rejects configurations the engine cannot run safely with.
func (c Config) Validate() error {
	if c.RateLimit.MaxAttempts <= 0 {
		return errors.New("rate limit max attempts must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("rate limit window must be positive")
	}
	if c.Tokens.AccessTTL <= 0 {
		return errors.New("access token TTL must be positive")
	}
	if c.Tokens.RefreshTTL <= 0 {
		return errors.New("refresh token TTL must be positive")
	}
	if len(c.Tokens.Secret) < 32 {
		return errors.New("token secret must be at least 32 bytes")
	}
	if c.Account.DefaultRole == "" {
		return errors.New("default role required")
	}
	if c.Account.DefaultPlan == "" {
		return errors.New("default plan required")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("store timeout must be positive")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	cloned := cfg
	cloned.Tokens.Secret = cloneBytes(cfg.Tokens.Secret)
	return cloned
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
