package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/infrastructure/metrics"
)

const testUserID = "8d7e2a8c-1c3f-4f5e-9b7a-0c2d4e6f8a10"

type authenticatorFunc func(token string) (*domain.User, error)

func (f authenticatorFunc) Authenticate(token string) (*domain.User, error) {
	return f(token)
}

func TestAuthMiddleware(t *testing.T) {
	id, _ := domain.NewUserID(testUserID)
	authn := authenticatorFunc(func(token string) (*domain.User, error) {
		if token == "good" {
			return &domain.User{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
		}
		return nil, domain.ErrInvalidToken
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantReason string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantReason: "missing_header"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantReason: "malformed_header"},
		{name: "bad token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantReason: "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())
			mw := NewAuthMiddleware(authn, m.AuthFailures)

			var got domain.UserID
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = RequesterFromContext(r.Context())
			})).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}

			if tt.wantReason == "" {
				if !got.Equal(id) {
					t.Fatalf("expected requester %s, got %s", id, got)
				}
				return
			}

			if n := testutil.ToFloat64(m.AuthFailures.WithLabelValues(tt.wantReason)); n != 1 {
				t.Fatalf("expected one %s failure, got %v", tt.wantReason, n)
			}
		})
	}
}

func TestHeaderIdentity(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid id", header: testUserID, wantStatus: http.StatusOK, wantUser: testUserID},
		{name: "anonymous", header: "", wantStatus: http.StatusOK},
		{name: "malformed id", header: "alice", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.UserID
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()

			HeaderIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = RequesterFromContext(r.Context())
			})).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if got.String() != tt.wantUser {
				t.Fatalf("expected requester %q, got %q", tt.wantUser, got.String())
			}
		})
	}
}

func TestRequesterFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequesterFromContext(req.Context()); !id.IsZero() {
		t.Fatalf("expected zero requester, got %s", id)
	}
	if _, ok := GetUserFromContext(req.Context()); ok {
		t.Fatalf("expected no user in context")
	}
}
