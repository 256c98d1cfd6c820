package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/walletsavior/walletsavior/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.LedgerBackend != config.BackendMemory {
		t.Fatalf("expected memory backend by default, got %s", cfg.LedgerBackend)
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis to be disabled by default, got %s", cfg.RedisURL)
	}

	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC savings location, got %v", cfg.Location())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LEDGER_BACKEND", "SQLite")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("SAVINGS_TIMEZONE", "Europe/Prague")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if !cfg.IsProduction() {
		t.Fatalf("expected prod alias to select production, got %s", cfg.Environment)
	}

	if cfg.LedgerBackend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.LedgerBackend)
	}

	if cfg.HTTPPort != "9090" || cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected overrides, got port=%s timeout=%s", cfg.HTTPPort, cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if cfg.Location().String() != "Europe/Prague" {
		t.Fatalf("expected Europe/Prague, got %s", cfg.Location())
	}
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HTTP_PORT=7070\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("LOG_LEVEL", "warn")
	// godotenv writes into the process environment
	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("HTTP_PORT")

	cfg, err := config.LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != "7070" {
		t.Fatalf("expected port from .env, got %s", cfg.HTTPPort)
	}

	if cfg.LogLevel != "warn" {
		t.Fatalf("expected environment to win over .env, got %s", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"duration", "HTTP_READ_TIMEOUT", "not-a-duration"},
		{"environment", "APP_ENV", "staging"},
		{"backend", "LEDGER_BACKEND", "mongo"},
		{"port", "HTTP_PORT", "0"},
		{"timezone", "SAVINGS_TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			if _, err := config.LoadFiles(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestValidateRequiresSecretWithAuth(t *testing.T) {
	cfg := &config.Config{
		Environment:     "dev",
		LedgerBackend:   "memory",
		HTTPPort:        "8080",
		SavingsTimezone: "UTC",
		AuthEnabled:     true,
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when auth is enabled without a secret")
	}
}
