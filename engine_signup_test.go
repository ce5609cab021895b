package authgate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSignUpCreatesSession(t *testing.T) {
	store := newMockAccountStore()
	engine := newTestEngine(t, store)

	sink := &captureSink{}
	session, err := engine.SignUp(context.Background(), SignUpInput{
		Email:     "new@example.com",
		Password:  "correct-horse-battery",
		FirstName: "New",
		LastName:  "User",
	}, sink)
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if session.UserID == "" {
		t.Fatal("session must carry the new account ID")
	}
	if session.Role != "user" || session.PlanID != "Unpaid" {
		t.Fatalf("defaults not applied: role=%q plan=%q", session.Role, session.PlanID)
	}
	if session.IsVerified {
		t.Fatal("new accounts start unverified")
	}
	if sink.stored == nil {
		t.Fatal("tokens must reach the sink")
	}

	stored := store.accounts["new@example.com"]
	if stored == nil {
		t.Fatal("account not persisted")
	}
	if stored.PasswordHash == "correct-horse-battery" {
		t.Fatal("secret must be hashed before it reaches the store")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	engine := newTestEngine(t, newMockAccountStore())
	signUpTestUser(t, engine, "taken@example.com", "correct-horse-battery")

	_, err := engine.SignUp(context.Background(), SignUpInput{
		Email:    "taken@example.com",
		Password: "another-password-here",
	}, &captureSink{})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("error = %v, want ErrEmailExists", err)
	}

	if got := engine.MetricsSnapshot().Counters[MetricSignupDuplicate]; got != 1 {
		t.Fatalf("duplicate counter = %d, want 1", got)
	}
}

func TestSignUpWeakPassword(t *testing.T) {
	engine := newTestEngine(t, newMockAccountStore())

	_, err := engine.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "short",
	}, &captureSink{})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("error = %v, want ErrWeakPassword", err)
	}
}

func TestSignUpNormalizesEmail(t *testing.T) {
	store := newMockAccountStore()
	engine := newTestEngine(t, store)

	session, err := engine.SignUp(context.Background(), SignUpInput{
		Email:    "  MiXeD@Example.COM ",
		Password: "correct-horse-battery",
	}, &captureSink{})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if session.Email != "mixed@example.com" {
		t.Fatalf("session email = %q, want lowercased", session.Email)
	}
	if store.accounts["mixed@example.com"] == nil {
		t.Fatal("account must be stored under the normalized email")
	}

	// Any casing of the same address is now a duplicate.
	_, err = engine.SignUp(context.Background(), SignUpInput{
		Email:    "mixed@EXAMPLE.com",
		Password: "correct-horse-battery",
	}, &captureSink{})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("error = %v, want ErrEmailExists", err)
	}

	// And login finds it regardless of casing.
	if _, err := engine.Login(context.Background(), "MIXED@example.com", "correct-horse-battery", DeviceInfo{}, &captureSink{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestSignUpStoreFailureStaysGeneric(t *testing.T) {
	store := newMockAccountStore()
	store.createErr = errors.New("unique constraint violated on users_email_key")
	engine := newTestEngine(t, store)

	_, err := engine.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "correct-horse-battery",
	}, &captureSink{})
	if !errors.Is(err, ErrSignupFailed) {
		t.Fatalf("error = %v, want ErrSignupFailed", err)
	}
	if err.Error() != ErrSignupFailed.Error() {
		t.Fatal("store error detail must not leak to the caller")
	}
}

func TestSignUpRequiresSink(t *testing.T) {
	engine := newTestEngine(t, newMockAccountStore())

	_, err := engine.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "correct-horse-battery",
	}, nil)
	if !errors.Is(err, ErrSinkRequired) {
		t.Fatalf("error = %v, want ErrSinkRequired", err)
	}
}

func TestSignUpEmitsAuditEvent(t *testing.T) {
	_, rdb := newTestRedis(t)
	auditSink := NewChannelSink(4)

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithAccountStore(newMockAccountStore()).
		WithAuditSink(auditSink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	session := signUpTestUser(t, engine, "new@example.com", "correct-horse-battery")

	select {
	case event := <-auditSink.Events():
		if event.EventType != "SIGNUP_SUCCESS" {
			t.Fatalf("event = %s, want SIGNUP_SUCCESS", event.EventType)
		}
		if !event.Success || event.UserID != session.UserID {
			t.Fatalf("event = %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SIGNUP_SUCCESS")
	}
}
