// Package memstore provides in-memory store implementations. They are
// process-local and unsuitable for multi-instance deployments; use them in
// tests, examples, and single-node development setups.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	authgate "github.com/tkondic/authgate"
	"github.com/tkondic/authgate/internal/rate"
)

// AccountStore keeps accounts in a map keyed by lowercased email.
type AccountStore struct {
	mu       sync.RWMutex
	byEmail  map[string]*authgate.Account
	planName string
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byEmail: make(map[string]*authgate.Account),
	}
}

var _ authgate.AccountStore = (*AccountStore)(nil)

// GetAccountByEmail returns a copy of the stored account, or nil, nil when
// absent.
func (s *AccountStore) GetAccountByEmail(_ context.Context, email string) (*authgate.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

// CreateAccount stores a new account and returns it with a generated ID.
// The plan name stands in for a plan ID; a real database would resolve it.
func (s *AccountStore) CreateAccount(_ context.Context, input authgate.CreateAccountInput) (*authgate.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	account := &authgate.Account{
		ID:           uuid.NewString(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		PlanID:       input.PlanName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byEmail[input.Email] = account

	copied := *account
	return &copied, nil
}

type attemptEntry struct {
	count       int
	windowStart time.Time
}

// AttemptStore keeps failed-attempt counters under a mutex. The mutex
// makes Increment the atomic read-modify-write the contract requires.
type AttemptStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*attemptEntry
}

// NewAttemptStore creates a counter store with the given window length.
func NewAttemptStore(window time.Duration) *AttemptStore {
	return &AttemptStore{
		window:  window,
		entries: make(map[string]*attemptEntry),
	}
}

var _ rate.AttemptStore = (*AttemptStore)(nil)

// Get returns the stored record for the pair, expired or not. Window
// interpretation is the limiter's job.
func (s *AttemptStore) Get(_ context.Context, ip, identifier string) (*rate.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[ip+"\x00"+identifier]
	if !ok {
		return nil, nil
	}
	return &rate.AttemptRecord{
		Count:       entry.count,
		WindowStart: entry.windowStart,
	}, nil
}

// Increment bumps the counter, restarting the window at one when the
// previous window has lapsed.
func (s *AttemptStore) Increment(_ context.Context, ip, identifier string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ip + "\x00" + identifier
	entry, ok := s.entries[key]
	if !ok || now.After(entry.windowStart.Add(s.window)) {
		entry = &attemptEntry{windowStart: now}
		s.entries[key] = entry
	}
	entry.count++

	return entry.count, nil
}

// Delete removes the counter for the pair.
func (s *AttemptStore) Delete(_ context.Context, ip, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, ip+"\x00"+identifier)
	return nil
}
