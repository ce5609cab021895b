// Package pgstore backs the account store, the failed-attempt counter, and
// the audit sink with PostgreSQL via pgx. Expected schema:
//
//	plans(id uuid pk, name text unique)
//	users(id uuid pk default gen_random_uuid(), email text unique,
//	      first_name text, last_name text, password_hash text, role text,
//	      is_verified bool default false, plan_id uuid references plans,
//	      created_at timestamptz default now(),
//	      updated_at timestamptz default now())
//	failed_attempts(ip_address text, identifier text, attempt_count int,
//	      window_start timestamptz, primary key (ip_address, identifier))
//	auth_audit_log(id uuid pk default gen_random_uuid(), event_time
//	      timestamptz, event_type text, user_id text, identifier text,
//	      ip_address text, success bool, error text)
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	authgate "github.com/tkondic/authgate"
	"github.com/tkondic/authgate/internal/audit"
	"github.com/tkondic/authgate/internal/rate"
)

// DB is the slice of the pgx pool API the store uses. *pgxpool.Pool
// satisfies it, and so do the pgxmock interfaces used in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store implements the account store, attempt store, and audit sink
// against one database handle.
type Store struct {
	db     DB
	window time.Duration
}

// New creates a store. The window length governs when a failed-attempt
// upsert restarts the counter instead of bumping it.
func New(db DB, window time.Duration) *Store {
	return &Store{db: db, window: window}
}

var (
	_ authgate.AccountStore = (*Store)(nil)
	_ rate.AttemptStore     = (*Store)(nil)
	_ audit.Sink            = (*Store)(nil)
)

const getAccountQuery = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash,
	       u.role, u.is_verified, u.plan_id, u.created_at, u.updated_at
	FROM users u
	WHERE u.email = $1
	LIMIT 1;
`

// GetAccountByEmail looks an account up by exact email. A missing row is
// nil, nil, not an error.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*authgate.Account, error) {
	row := s.db.QueryRow(ctx, getAccountQuery, email)

	var account authgate.Account
	err := row.Scan(
		&account.ID, &account.Email, &account.FirstName, &account.LastName,
		&account.PasswordHash, &account.Role, &account.IsVerified,
		&account.PlanID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &account, nil
}

const createAccountQuery = `
	WITH plan AS (
		SELECT id FROM plans WHERE name = $6
	)
	INSERT INTO users (email, first_name, last_name, password_hash, role, plan_id)
	SELECT $1, $2, $3, $4, $5, plan.id FROM plan
	RETURNING id, plan_id, is_verified, created_at, updated_at;
`

// CreateAccount inserts the account on the named plan. An unknown plan
// name inserts nothing and surfaces as pgx.ErrNoRows.
func (s *Store) CreateAccount(ctx context.Context, input authgate.CreateAccountInput) (*authgate.Account, error) {
	row := s.db.QueryRow(ctx, createAccountQuery,
		input.Email, input.FirstName, input.LastName,
		input.PasswordHash, input.Role, input.PlanName,
	)

	account := authgate.Account{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}
	err := row.Scan(&account.ID, &account.PlanID, &account.IsVerified,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &account, nil
}

const getAttemptQuery = `
	SELECT attempt_count, window_start
	FROM failed_attempts
	WHERE ip_address = $1 AND identifier = $2;
`

// Get reads the stored counter. Expired windows are returned as-is; the
// limiter decides whether they still count.
func (s *Store) Get(ctx context.Context, ip, identifier string) (*rate.AttemptRecord, error) {
	row := s.db.QueryRow(ctx, getAttemptQuery, ip, identifier)

	var record rate.AttemptRecord
	if err := row.Scan(&record.Count, &record.WindowStart); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attempt record: %w", err)
	}

	return &record, nil
}

// The upsert is the atomic read-modify-write: a stale window restarts at
// one, a live window bumps by one, all inside a single statement.
const incrementAttemptQuery = `
	INSERT INTO failed_attempts (ip_address, identifier, attempt_count, window_start)
	VALUES ($1, $2, 1, $3)
	ON CONFLICT (ip_address, identifier) DO UPDATE SET
		attempt_count = CASE
			WHEN failed_attempts.window_start <= $4 THEN 1
			ELSE failed_attempts.attempt_count + 1
		END,
		window_start = CASE
			WHEN failed_attempts.window_start <= $4 THEN $3
			ELSE failed_attempts.window_start
		END
	RETURNING attempt_count;
`

// Increment counts one failed attempt and returns the new total.
func (s *Store) Increment(ctx context.Context, ip, identifier string, now time.Time) (int, error) {
	cutoff := now.Add(-s.window)

	var count int
	row := s.db.QueryRow(ctx, incrementAttemptQuery, ip, identifier, now, cutoff)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("increment attempt record: %w", err)
	}

	return count, nil
}

const deleteAttemptQuery = `
	DELETE FROM failed_attempts
	WHERE ip_address = $1 AND identifier = $2;
`

// Delete removes the counter row. Deleting nothing is fine.
func (s *Store) Delete(ctx context.Context, ip, identifier string) error {
	if _, err := s.db.Exec(ctx, deleteAttemptQuery, ip, identifier); err != nil {
		return fmt.Errorf("delete attempt record: %w", err)
	}
	return nil
}

const insertAuditQuery = `
	INSERT INTO auth_audit_log (event_time, event_type, user_id, identifier, ip_address, success, error)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// Emit appends one audit event. Failures are swallowed: the dispatcher
// contract says a broken sink must never fail an authentication request.
func (s *Store) Emit(ctx context.Context, event audit.Event) {
	_, _ = s.db.Exec(ctx, insertAuditQuery,
		event.Timestamp, event.EventType, event.UserID,
		event.Identifier, event.IP, event.Success, event.Error,
	)
}
