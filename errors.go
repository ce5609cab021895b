package authgate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for any credential failure. It never
	// reveals whether the identifier existed or the password mismatched.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountLocked is returned while the (IP, identifier) pair is inside
	// a lockout window.
	ErrAccountLocked = errors.New("too many failed login attempts")
	// ErrEmailExists is returned by SignUp when the identifier is taken.
	ErrEmailExists = errors.New("email already registered")
	// ErrWeakPassword is returned when the supplied secret fails the
	// hasher's minimum requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")
	// ErrSignupFailed is the generic account-creation failure; the
	// underlying store error is logged, never exposed.
	ErrSignupFailed = errors.New("failed to create account")
	// ErrServerError covers unclassified backing-store failures. The engine
	// fails closed: a store timeout is a server error, never a bypass.
	ErrServerError = errors.New("authentication backend unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrSinkRequired is returned when a login/signup call has no token sink
	// to deliver the session artifacts to.
	ErrSinkRequired = errors.New("token sink required")
)

// RateLimitError carries the only user-facing rate-limit detail: whether the
// pair is locked, and how many attempts remain before the lock engages. It
// unwraps to [ErrAccountLocked] or [ErrInvalidCredentials] so callers can
// classify with errors.Is.
type RateLimitError struct {
	Locked    bool
	Remaining int
}

func (e *RateLimitError) Error() string {
	if e.Locked {
		return "too many failed attempts, try again after the lockout window"
	}
	if e.Remaining == 1 {
		return "invalid email or password: 1 attempt remaining before temporary lockout"
	}
	return fmt.Sprintf("invalid email or password: %d attempts remaining before temporary lockout", e.Remaining)
}

func (e *RateLimitError) Unwrap() error {
	if e.Locked {
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}
