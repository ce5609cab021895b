package rate

import (
	"context"
	"time"
)

// AttemptRecord is the stored failed-attempt counter for one
// (client IP, identifier) pair.
type AttemptRecord struct {
	Count       int
	WindowStart time.Time
}

// AttemptStore is the durable counter backing the limiter.
//
// Increment must be a single atomic read-modify-write against the backing
// store: two concurrent failed attempts may never under-count. The store
// also owns the window restart rule — an increment after the window expired
// yields a fresh record with count 1.
type AttemptStore interface {
	// Get returns the current record for the pair, or nil when absent.
	Get(ctx context.Context, ip, identifier string) (*AttemptRecord, error)

	// Increment atomically bumps the counter, creating the record with
	// count 1 when absent or stale, and returns the new count.
	Increment(ctx context.Context, ip, identifier string, now time.Time) (int, error)

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, ip, identifier string) error
}

// State classifies one reading of the attempt counter.
type State uint8

const (
	// Allowed means the attempt proceeds with no user-facing caveat.
	Allowed State = iota
	// Warning means the attempt proceeds but the caller should surface
	// the remaining-attempts count.
	Warning
	// Locked means the attempt must be rejected without consulting the
	// credential store.
	Locked
)

// Decision is the result of evaluating the counter against policy.
// It is computed per request and never persisted.
type Decision struct {
	State     State
	Remaining int
}

// Config holds the lockout policy constants.
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

// Limiter translates raw attempt counts into allow/warn/lock decisions.
type Limiter struct {
	store  AttemptStore
	config Config
	now    func() time.Time
}

// New creates a [Limiter] over the given attempt store.
func New(store AttemptStore, cfg Config) *Limiter {
	return &Limiter{
		store:  store,
		config: cfg,
		now:    time.Now,
	}
}

// Evaluate reads the counter without mutating it. A missing record or an
// expired window evaluates as count zero, so a fresh pair is always Allowed
// with the full budget remaining.
func (l *Limiter) Evaluate(ctx context.Context, ip, identifier string) (Decision, error) {
	record, err := l.store.Get(ctx, ip, identifier)
	if err != nil {
		return Decision{}, err
	}

	count := 0
	if record != nil && !l.now().After(record.WindowStart.Add(l.config.Window)) {
		count = record.Count
	}

	return l.decide(count), nil
}

// RecordFailure counts one failed attempt and classifies the new total.
// This is the only mutation path; the increment happens inside the store.
func (l *Limiter) RecordFailure(ctx context.Context, ip, identifier string) (Decision, error) {
	count, err := l.store.Increment(ctx, ip, identifier, l.now())
	if err != nil {
		return Decision{}, err
	}

	return l.decide(count), nil
}

// Reset clears the counter for the pair. Called only after a verified
// successful login.
func (l *Limiter) Reset(ctx context.Context, ip, identifier string) error {
	return l.store.Delete(ctx, ip, identifier)
}

// decide applies the thresholds in priority order: lock, then warn, then
// allow. Remaining never goes negative.
func (l *Limiter) decide(count int) Decision {
	remaining := l.config.MaxAttempts - count

	switch {
	case remaining <= 0:
		return Decision{State: Locked, Remaining: 0}
	case remaining <= 2:
		return Decision{State: Warning, Remaining: remaining}
	default:
		return Decision{State: Allowed, Remaining: remaining}
	}
}
