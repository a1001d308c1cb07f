package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// IdentityKey is the context key for the authenticated caller
	IdentityKey ContextKey = "identity"
)

// Identity is the authenticated caller of a request
type Identity struct {
	UserID  int64
	TokenID int64
}

// TokenVerifier resolves a raw bearer token into the caller identity
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (Identity, error)
}

// TokenVerifierFunc adapts a function to TokenVerifier
type TokenVerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f TokenVerifierFunc) VerifyToken(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}

// RequireAuth rejects requests without a valid "Bearer <token>" header and
// stores the caller identity in the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				response.Error(ctx, w, apperror.Unauthorized("Authorization header required"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				response.Error(ctx, w, apperror.Unauthorized("Invalid authorization header format"))
				return
			}

			identity, err := verifier.VerifyToken(ctx, strings.TrimSpace(parts[1]))
			if err != nil {
				response.Error(ctx, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity extracts the caller identity from the request context
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(Identity)
	return identity, ok
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.UserID, ok
}
