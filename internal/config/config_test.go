package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/healthconnect_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected default env to be development")
	}
	if cfg.TokenTTLMinutes != 720 {
		t.Errorf("expected default token TTL 720, got %d", cfg.TokenTTLMinutes)
	}
	if cfg.GatewayKeyID == "" {
		t.Error("expected a default gateway key id")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestValidate_ProductionRequiresJWTSecret(t *testing.T) {
	cfg := &Config{
		Env:              "production",
		TokenTTLMinutes:  720,
		RequestTimeout:   30,
		GatewayKeySecret: "secret",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure without JWT_SECRET in production")
	}

	cfg.JWTSecret = "super-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_DevAllowsEmptySecret(t *testing.T) {
	cfg := &Config{
		Env:              "development",
		TokenTTLMinutes:  60,
		RequestTimeout:   10,
		GatewayKeySecret: "secret",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_RejectsBadNumbers(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLMinutes: 0, RequestTimeout: 30, GatewayKeySecret: "s"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero token TTL")
	}
	cfg = &Config{Env: "development", TokenTTLMinutes: 60, RequestTimeout: 0, GatewayKeySecret: "s"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero request timeout")
	}
}
