package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

type contextKey string

const userIDKey = contextKey("userID")

// Middleware guards a route subtree behind bearer token verification.
type Middleware func(http.Handler) http.Handler

// RequireAuth verifies the Authorization header and stores the resolved
// identity in the request context.
func RequireAuth(tokens *TokenIssuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				httpx.RespondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the identity stored by RequireAuth.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// ContextWithUserID injects an identity, for tests that bypass the middleware.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
