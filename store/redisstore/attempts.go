// Package redisstore backs the failed-attempt counter with Redis. This is
// the default store: INCR gives the atomic read-modify-write the counter
// contract demands, and key TTLs give window expiry for free.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkondic/authgate/internal/rate"
)

// ErrUnavailable wraps any Redis transport or server failure. Callers
// treat it as a hard error and fail closed.
var ErrUnavailable = errors.New("redisstore: redis unavailable")

// AttemptStore implements the attempt counter on Redis. One key per
// (client IP, identifier) pair, expiring with the window.
type AttemptStore struct {
	redis  redis.UniversalClient
	window time.Duration
}

// NewAttemptStore creates a store whose counters expire after window.
func NewAttemptStore(client redis.UniversalClient, window time.Duration) *AttemptStore {
	return &AttemptStore{
		redis:  client,
		window: window,
	}
}

var _ rate.AttemptStore = (*AttemptStore)(nil)

// Get reads the counter without mutating it. A missing key means no record.
// The window start is reconstructed from the key's remaining TTL.
func (s *AttemptStore) Get(ctx context.Context, ip, identifier string) (*rate.AttemptRecord, error) {
	key := attemptKey(ip, identifier)

	count, err := s.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ttl, err := s.redis.PTTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if ttl == -2*time.Millisecond {
		// Key expired between the two calls.
		return nil, nil
	}
	if ttl < 0 {
		// The key lost its TTL (a crash between INCR and EXPIRE). Reattach
		// one so the counter cannot outlive the window, and restart the
		// window from here.
		if err := s.redis.Expire(ctx, key, s.window).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		ttl = s.window
	}

	return &rate.AttemptRecord{
		Count:       int(count),
		WindowStart: time.Now().Add(ttl - s.window),
	}, nil
}

// Increment atomically bumps the counter. The TTL is attached only on the
// first hit, so the window is fixed from the first failure, not sliding.
func (s *AttemptStore) Increment(ctx context.Context, ip, identifier string, _ time.Time) (int, error) {
	key := attemptKey(ip, identifier)

	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if count == 1 {
		if err := s.redis.Expire(ctx, key, s.window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return int(count), nil
}

// Delete clears the counter. Missing keys are fine.
func (s *AttemptStore) Delete(ctx context.Context, ip, identifier string) error {
	if err := s.redis.Del(ctx, attemptKey(ip, identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func attemptKey(ip, identifier string) string {
	return "authgate:attempts:" + ip + ":" + identifier
}
