package authgate

import (
	"context"
	"log"
	"strings"
	"time"

	internalaudit "github.com/tkondic/authgate/internal/audit"
	"github.com/tkondic/authgate/internal/rate"
	"github.com/tkondic/authgate/password"
)

// Engine is the authentication orchestrator. It holds no per-request state:
// counters live in the attempt store, accounts in the account store, and
// issued tokens at the client boundary behind the per-request [TokenSink].
//
// Engines are built once through [Builder.Build] and are safe for
// concurrent use.
type Engine struct {
	config   Config
	accounts AccountStore
	limiter  *rate.Limiter
	hasher   *password.Argon2
	issuer   *tokenIssuer
	audit    *auditDispatcher
	metrics  *Metrics
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// Logout clears the client's session artifacts through the sink. Clearing
// is unconditional and idempotent; logging out twice is harmless.
func (e *Engine) Logout(ctx context.Context, sink TokenSink) {
	if sink != nil {
		sink.Clear()
	}
	if e == nil {
		return
	}
	e.metricInc(MetricLogout)
	e.emitAudit(ctx, internalaudit.EventLogout, true, "", "", nil, nil)
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, userID, identifier string, failure error, metadata map[string]string) {
	if e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:  time.Now(),
		EventType:  eventType,
		UserID:     userID,
		Identifier: identifier,
		IP:         clientIPFromContext(ctx),
		Success:    success,
		Metadata:   metadata,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if userAgent := userAgentFromContext(ctx); userAgent != "" {
		if event.Metadata == nil {
			event.Metadata = map[string]string{}
		}
		event.Metadata["user_agent"] = userAgent
	}

	e.audit.Emit(ctx, event)
}

// serverError logs the real cause and hands the caller the generic
// sentinel. Store-specific error text never crosses the API boundary.
func (e *Engine) serverError(op string, err error) error {
	e.metricInc(MetricServerError)
	log.Printf("authgate: %s: %v", op, err)
	return ErrServerError
}

// Backing-store calls run under a bounded timeout; on expiry the engine
// fails closed rather than letting a slow store bypass rate limiting.
func (e *Engine) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.config.StoreTimeout)
}

func (e *Engine) evaluateLimit(ctx context.Context, ip, email string) (rate.Decision, error) {
	ctx, cancel := e.storeContext(ctx)
	defer cancel()
	return e.limiter.Evaluate(ctx, ip, email)
}

func (e *Engine) recordFailure(ctx context.Context, ip, email string) (rate.Decision, error) {
	ctx, cancel := e.storeContext(ctx)
	defer cancel()
	return e.limiter.RecordFailure(ctx, ip, email)
}

func (e *Engine) resetLimit(ctx context.Context, ip, email string) error {
	ctx, cancel := e.storeContext(ctx)
	defer cancel()
	return e.limiter.Reset(ctx, ip, email)
}

func (e *Engine) lookupAccount(ctx context.Context, email string) (*Account, error) {
	ctx, cancel := e.storeContext(ctx)
	defer cancel()
	return e.accounts.GetAccountByEmail(ctx, email)
}

func (e *Engine) createAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	ctx, cancel := e.storeContext(ctx)
	defer cancel()
	return e.accounts.CreateAccount(ctx, input)
}

// openSession issues a fresh token pair, delivers it to the sink, and
// assembles the caller-visible session.
func (e *Engine) openSession(account *Account, device DeviceInfo, sink TokenSink) (*Session, error) {
	tokens, err := e.issuer.Issue(account.ID, account.Email, account.Role, account.PlanID, device)
	if err != nil {
		return nil, err
	}

	csrfToken, err := sink.Store(tokens)
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID:     account.ID,
		Email:      account.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Role:       account.Role,
		IsVerified: account.IsVerified,
		PlanID:     account.PlanID,
		Tokens:     tokens,
		CSRFToken:  csrfToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
