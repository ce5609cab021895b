package authgate

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Tokens.Secret = []byte("0123456789abcdef0123456789abcdef")
	return cfg
}

func TestDefaultConfigPolicy(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RateLimit.MaxAttempts != 5 {
		t.Fatalf("max attempts = %d, want 5", cfg.RateLimit.MaxAttempts)
	}
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Fatalf("window = %v, want 15m", cfg.RateLimit.Window)
	}
	if cfg.Tokens.AccessTTL != time.Hour {
		t.Fatalf("access TTL = %v, want 1h", cfg.Tokens.AccessTTL)
	}
	if cfg.Tokens.RefreshTTL != 7*24*time.Hour {
		t.Fatalf("refresh TTL = %v, want 7d", cfg.Tokens.RefreshTTL)
	}
	if cfg.Account.DefaultPlan != "Unpaid" {
		t.Fatalf("default plan = %q", cfg.Account.DefaultPlan)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "zero max attempts",
			mutate:  func(c *Config) { c.RateLimit.MaxAttempts = 0 },
			wantErr: "max attempts",
		},
		{
			name:    "negative window",
			mutate:  func(c *Config) { c.RateLimit.Window = -time.Minute },
			wantErr: "window",
		},
		{
			name:    "zero access TTL",
			mutate:  func(c *Config) { c.Tokens.AccessTTL = 0 },
			wantErr: "access token TTL",
		},
		{
			name:    "zero refresh TTL",
			mutate:  func(c *Config) { c.Tokens.RefreshTTL = 0 },
			wantErr: "refresh token TTL",
		},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.Tokens.Secret = []byte("too-short") },
			wantErr: "secret",
		},
		{
			name:    "empty default role",
			mutate:  func(c *Config) { c.Account.DefaultRole = "" },
			wantErr: "default role",
		},
		{
			name:    "empty default plan",
			mutate:  func(c *Config) { c.Account.DefaultPlan = "" },
			wantErr: "default plan",
		},
		{
			name:    "zero store timeout",
			mutate:  func(c *Config) { c.StoreTimeout = 0 },
			wantErr: "store timeout",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestCloneConfigIsolatesSecret(t *testing.T) {
	cfg := validConfig()
	cloned := cloneConfig(cfg)

	cfg.Tokens.Secret[0] = 'x'
	if cloned.Tokens.Secret[0] == 'x' {
		t.Fatal("clone must not share the secret buffer")
	}
}
