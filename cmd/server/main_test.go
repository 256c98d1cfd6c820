package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletsavior/walletsavior/internal/infrastructure/config"
)

const testUserID = "8d7e2a8c-1c3f-4f5e-9b7a-0c2d4e6f8a10"

func testConfig(backend string) *config.Config {
	return &config.Config{
		Environment:         config.EnvTest,
		LedgerBackend:       backend,
		MigrateOnStart:      true,
		DatabaseTimeout:     time.Second,
		AccountCacheTTL:     time.Minute,
		HTTPPort:            "0",
		HTTPShutdownTimeout: time.Second,
		IdempotencyTTL:      time.Hour,
		SavingsTimezone:     "UTC",
	}
}

func createAccount(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name":"Main","currency":"EUR"}`))
	req.Header.Set("X-User-ID", testUserID)
	req.Header.Set("Idempotency-Key", "create-main")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApp_Backends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		prepare func(t *testing.T, cfg *config.Config)
		ready   string
	}{
		{name: "memory", backend: config.BackendMemory},
		{
			name:    "sqlite with redis",
			backend: config.BackendSQLite,
			prepare: func(t *testing.T, cfg *config.Config) {
				cfg.SQLitePath = filepath.Join(t.TempDir(), "wallet.db")
				cfg.RedisURL = "redis://" + miniredis.RunT(t).Addr()
			},
			ready: `"sqlite":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.backend)
			if tt.prepare != nil {
				tt.prepare(t, cfg)
			}

			a, err := newApp(context.Background(), cfg, zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(a.Close)

			rec := createAccount(t, a.handler)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			rec = httptest.NewRecorder()
			a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			if tt.ready != "" {
				assert.Contains(t, rec.Body.String(), tt.ready)
			}

			rec = httptest.NewRecorder()
			a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "walletsavior_bank_accounts_created_total 1")
		})
	}
}

func TestNewApp_ReplaysIdempotentCreate(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.RedisURL = "redis://" + miniredis.RunT(t).Addr()

	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	first := createAccount(t, a.handler)
	second := createAccount(t, a.handler)

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replay"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestNewApp_FailsOnUnreachableRedis(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.RedisURL = "redis://127.0.0.1:1"

	_, err := newApp(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(config.BackendMemory)) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
