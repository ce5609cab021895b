package authgate

import (
	"context"
	"log"
	"strconv"

	internalaudit "github.com/tkondic/authgate/internal/audit"
	"github.com/tkondic/authgate/internal/rate"
)

// Login authenticates the identifier/secret pair and, on success, issues a
// token pair into the sink and returns the session.
//
// The attempt-limiting guard runs first: a locked (IP, identifier) pair is
// rejected before the account store is consulted, and the rejection is
// audited as a lockout, not as a credential failure. Credential failures
// are counted, classified (plain, warning with remaining attempts, or
// escalation to lockout), and audited as LOGIN_FAILED.
func (e *Engine) Login(ctx context.Context, email, secret string, device DeviceInfo, sink TokenSink) (*Session, error) {
	if e == nil || e.accounts == nil || e.limiter == nil {
		return nil, ErrEngineNotReady
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}

	email = normalizeEmail(email)
	ip := clientIPFromContext(ctx)

	decision, err := e.evaluateLimit(ctx, ip, email)
	if err != nil {
		return nil, e.serverError("rate limit evaluation", err)
	}
	if decision.State == rate.Locked {
		e.metricInc(MetricLoginLocked)
		e.metricInc(MetricRateLimitHit)
		e.emitAudit(ctx, internalaudit.EventLoginLocked, false, "", email, ErrAccountLocked, nil)
		return nil, &RateLimitError{Locked: true}
	}

	account, err := e.lookupAccount(ctx, email)
	if err != nil {
		return nil, e.serverError("account lookup", err)
	}
	if account == nil {
		// Indistinguishable from a password mismatch for the caller.
		return nil, e.failLogin(ctx, ip, email, "", "unknown_identifier")
	}

	ok, err := e.hasher.Verify(secret, account.PasswordHash)
	if err != nil {
		// A malformed stored hash still fails the login, but the corruption
		// must not vanish silently.
		log.Printf("authgate: password verify for %s: %v", email, err)
	}
	if err != nil || !ok {
		return nil, e.failLogin(ctx, ip, email, account.ID, "password_mismatch")
	}

	session, err := e.openSession(account, device, sink)
	if err != nil {
		return nil, e.serverError("session issuance", err)
	}

	if err := e.resetLimit(ctx, ip, email); err != nil {
		log.Printf("authgate: failed to reset attempt counter for %s: %v", email, err)
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionIssued)
	e.emitAudit(ctx, internalaudit.EventLoginSuccess, true, account.ID, email, nil, nil)

	return session, nil
}

// failLogin counts one failed attempt and maps the resulting decision onto
// the caller-facing error taxonomy. A store failure here fails closed.
func (e *Engine) failLogin(ctx context.Context, ip, email, userID, reason string) error {
	decision, err := e.recordFailure(ctx, ip, email)
	if err != nil {
		return e.serverError("attempt increment", err)
	}

	e.metricInc(MetricLoginFailure)
	e.emitAudit(ctx, internalaudit.EventLoginFailed, false, userID, email, ErrInvalidCredentials, map[string]string{
		"reason":    reason,
		"remaining": strconv.Itoa(decision.Remaining),
	})

	switch decision.State {
	case rate.Locked:
		e.metricInc(MetricRateLimitHit)
		return &RateLimitError{Locked: true}
	case rate.Warning:
		return &RateLimitError{Remaining: decision.Remaining}
	default:
		return ErrInvalidCredentials
	}
}
