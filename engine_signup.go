package authgate

import (
	"context"
	"errors"
	"log"

	internalaudit "github.com/tkondic/authgate/internal/audit"
	"github.com/tkondic/authgate/password"
)

// SignUpInput is the input for [Engine.SignUp]. The email is normalized and
// the secret hashed inside the engine; callers pass them raw.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Device    DeviceInfo
}

// SignUp creates an account on the engine's default plan and opens a
// session for it. The new account starts unverified.
//
// A taken identifier fails with [ErrEmailExists]; any store-side creation
// failure collapses into [ErrSignupFailed] with the cause kept in the log
// only.
func (e *Engine) SignUp(ctx context.Context, input SignUpInput, sink TokenSink) (*Session, error) {
	if e == nil || e.accounts == nil {
		return nil, ErrEngineNotReady
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}

	email := normalizeEmail(input.Email)

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, ErrWeakPassword
		}
		e.metricInc(MetricSignupFailure)
		return nil, ErrSignupFailed
	}

	existing, err := e.lookupAccount(ctx, email)
	if err != nil {
		return nil, e.serverError("signup uniqueness check", err)
	}
	if existing != nil {
		e.metricInc(MetricSignupDuplicate)
		return nil, ErrEmailExists
	}

	account, err := e.createAccount(ctx, CreateAccountInput{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         e.config.Account.DefaultRole,
		PlanName:     e.config.Account.DefaultPlan,
	})
	if err != nil {
		e.metricInc(MetricSignupFailure)
		log.Printf("authgate: account creation failed for %s: %v", email, err)
		return nil, ErrSignupFailed
	}

	session, err := e.openSession(account, input.Device, sink)
	if err != nil {
		return nil, e.serverError("session issuance", err)
	}

	e.metricInc(MetricSignupSuccess)
	e.metricInc(MetricSessionIssued)
	e.emitAudit(ctx, internalaudit.EventSignupSuccess, true, account.ID, email, nil, nil)

	return session, nil
}
