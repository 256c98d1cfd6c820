package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/walletsavior/walletsavior/internal/domain"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"

	// UserIDHeader carries the caller's id when token authentication is disabled.
	UserIDHeader = "X-User-ID"
)

// Authenticator turns a bearer token into the caller it identifies.
type Authenticator interface {
	Authenticate(token string) (*domain.User, error)
}

// AuthMiddleware requires a valid bearer token on every request.
type AuthMiddleware struct {
	authn    Authenticator
	failures *prometheus.CounterVec
}

// NewAuthMiddleware creates an AuthMiddleware. failures may be nil.
func NewAuthMiddleware(authn Authenticator, failures *prometheus.CounterVec) *AuthMiddleware {
	return &AuthMiddleware{authn: authn, failures: failures}
}

// Wrap wraps an http.Handler with bearer token authentication.
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.reject(w, "missing_header", "missing authorization header")
			return
		}

		// Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(w, "malformed_header", "invalid authorization header format")
			return
		}

		user, err := m.authn.Authenticate(parts[1])
		if err != nil {
			m.reject(w, "invalid_token", "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, reason, message string) {
	if m.failures != nil {
		m.failures.WithLabelValues(reason).Inc()
	}
	writeError(w, http.StatusUnauthorized, message)
}

// HeaderIdentity trusts the X-User-ID header. Requests without it continue
// anonymously; a malformed id is rejected.
func HeaderIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := domain.NewUserID(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid "+UserIDHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &domain.User{ID: id})))
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

// RequesterFromContext returns the caller's id, or the zero UserID for
// anonymous requests.
func RequesterFromContext(ctx context.Context) domain.UserID {
	if user, ok := GetUserFromContext(ctx); ok && user != nil {
		return user.ID
	}
	return domain.UserID{}
}
