package authgate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/tkondic/authgate/internal/audit"
	internalmetrics "github.com/tkondic/authgate/internal/metrics"
	"github.com/tkondic/authgate/internal/rate"
)

// Account is the identity record owned by the credential store. The engine
// reads it during login and writes it exactly once, at signup.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsVerified   bool
	PlanID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAccountInput is the input for [AccountStore.CreateAccount]. The
// email arrives already lowercased and the secret already hashed.
type CreateAccountInput struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	PlanName     string
}

// AccountStore is the persistent credential contract that callers must
// implement to integrate authgate with their user database. Any store
// works as long as lookups are by exact (lowercased) email.
type AccountStore interface {
	// GetAccountByEmail returns nil, nil when no account matches.
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)

	// CreateAccount persists a new account with the given default plan and
	// returns it with store-assigned fields (ID, timestamps) filled in.
	CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error)
}

// AttemptStore is the durable failed-attempt counter contract. See
// the store/ packages for Redis, Postgres, and in-memory implementations.
type AttemptStore = rate.AttemptStore

// AttemptRecord is one stored failed-attempt counter.
type AttemptRecord = rate.AttemptRecord

// TokenPair is one issued access/refresh token pair. Pairs are immutable;
// a future refresh supersedes a pair, it never mutates one.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExpiry time.Duration
}

// Session is the client-visible result of a successful login or signup.
// The engine returns it and forgets it: cross-request caching of the
// current user is the caller's concern.
type Session struct {
	UserID     string
	Email      string
	FirstName  string
	LastName   string
	Role       string
	IsVerified bool
	PlanID     string
	Tokens     TokenPair
	CSRFToken  string
}

// DeviceInfo describes the requesting client. The fingerprint is hashed
// into issued access tokens so tokens minted for different devices cannot
// be silently swapped by a verifier that checks the binding.
type DeviceInfo struct {
	Fingerprint string
	UserAgent   string
}

// TokenSink stores issued tokens at the client trust boundary (cookies or
// an equivalent) and owns the anti-forgery token. See cookies.ResponseSink.
type TokenSink interface {
	// Store persists both tokens with restricted visibility and returns the
	// freshly generated script-readable anti-forgery token.
	Store(tokens TokenPair) (csrfToken string, err error)

	// Clear removes all session artifacts unconditionally, including any
	// that were never set. Clearing twice equals clearing once.
	Clear()

	// CSRFToken reports the anti-forgery token presented by the client,
	// when one is present.
	CSRFToken() (string, bool)
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess    = internalmetrics.MetricLoginSuccess
	MetricLoginFailure    = internalmetrics.MetricLoginFailure
	MetricLoginLocked     = internalmetrics.MetricLoginLocked
	MetricSignupSuccess   = internalmetrics.MetricSignupSuccess
	MetricSignupDuplicate = internalmetrics.MetricSignupDuplicate
	MetricSignupFailure   = internalmetrics.MetricSignupFailure
	MetricSessionIssued   = internalmetrics.MetricSessionIssued
	MetricLogout          = internalmetrics.MetricLogout
	MetricRateLimitHit    = internalmetrics.MetricRateLimitHit
	MetricServerError     = internalmetrics.MetricServerError
)

// Metrics holds the engine's atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled: cfg.Enabled,
	})
}
