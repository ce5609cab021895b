package authgate

import (
	"errors"
	"testing"
)

func TestBuildRequiresAccountStore(t *testing.T) {
	_, rdb := newTestRedis(t)

	_, err := New().WithConfig(testConfig()).WithRedis(rdb).Build()
	if err == nil {
		t.Fatal("expected build failure without account store")
	}
}

func TestBuildRequiresRedisOrAttemptStore(t *testing.T) {
	_, err := New().
		WithConfig(testConfig()).
		WithAccountStore(newMockAccountStore()).
		Build()
	if err == nil {
		t.Fatal("expected build failure without any attempt store")
	}
}

func TestBuildAcceptsCustomAttemptStore(t *testing.T) {
	engine, err := New().
		WithConfig(testConfig()).
		WithAccountStore(newMockAccountStore()).
		WithAttemptStore(&failingAttemptStore{err: errors.New("unused")}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	engine.Close()
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.Tokens.Secret = nil

	_, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithAccountStore(newMockAccountStore()).
		Build()
	if err == nil {
		t.Fatal("expected build failure on invalid config")
	}
}

func TestBuilderIsSingleUse(t *testing.T) {
	_, rdb := newTestRedis(t)

	builder := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithAccountStore(newMockAccountStore())

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := builder.Build(); err == nil {
		t.Fatal("second Build must fail")
	}
}
