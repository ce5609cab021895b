package jwt

import (
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	manager, err := NewManager(Config{
		AccessTTL: time.Hour,
		Secret:    testSecret,
		Issuer:    "authgate-test",
	})
	if err != nil {
		t.Fatalf("new manager failed: %v", err)
	}
	return manager
}

func TestNewManagerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero ttl", cfg: Config{Secret: testSecret}},
		{name: "short secret", cfg: Config{AccessTTL: time.Hour, Secret: []byte("short")}},
		{name: "excessive leeway", cfg: Config{AccessTTL: time.Hour, Secret: testSecret, Leeway: 5 * time.Minute}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected config rejection")
			}
		})
	}
}

func TestCreateAccessRoundTrip(t *testing.T) {
	manager := newTestManager(t)

	identity := Identity{
		UserID:     "user-1",
		Email:      "alice@example.com",
		Role:       "user",
		PlanID:     "plan-unpaid",
		DeviceHash: "device-digest",
	}

	token, err := manager.CreateAccess(identity)
	if err != nil {
		t.Fatalf("create access failed: %v", err)
	}

	claims, err := manager.ParseAccess(token)
	if err != nil {
		t.Fatalf("parse access failed: %v", err)
	}

	if claims.Subject != identity.UserID {
		t.Fatalf("subject = %q, want %q", claims.Subject, identity.UserID)
	}
	if claims.Email != identity.Email || claims.Role != identity.Role {
		t.Fatalf("identity claims mismatch: %+v", claims)
	}
	if claims.PlanID != identity.PlanID {
		t.Fatalf("plan = %q, want %q", claims.PlanID, identity.PlanID)
	}
	if claims.DeviceHash != identity.DeviceHash {
		t.Fatalf("device hash = %q, want %q", claims.DeviceHash, identity.DeviceHash)
	}
	if claims.ID == "" {
		t.Fatal("jti must be set")
	}
}

func TestCreateAccessNeverRepeats(t *testing.T) {
	manager := newTestManager(t)
	identity := Identity{UserID: "user-1", Email: "alice@example.com"}

	first, err := manager.CreateAccess(identity)
	if err != nil {
		t.Fatalf("create access failed: %v", err)
	}
	second, err := manager.CreateAccess(identity)
	if err != nil {
		t.Fatalf("create access failed: %v", err)
	}

	if first == second {
		t.Fatal("identical inputs must still yield distinct tokens")
	}
}

func TestParseAccessRejectsTampering(t *testing.T) {
	manager := newTestManager(t)

	token, err := manager.CreateAccess(Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("create access failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := manager.ParseAccess(tampered); err == nil {
		t.Fatal("tampered signature must be rejected")
	}
}

func TestParseAccessRejectsWrongSecret(t *testing.T) {
	manager := newTestManager(t)

	other, err := NewManager(Config{
		AccessTTL: time.Hour,
		Secret:    []byte("ffffffffffffffffffffffffffffffff"),
		Issuer:    "authgate-test",
	})
	if err != nil {
		t.Fatalf("new manager failed: %v", err)
	}

	token, err := other.CreateAccess(Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("create access failed: %v", err)
	}

	if _, err := manager.ParseAccess(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}
