package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "civreg/pkg/domain"
)

// IdentityValidator verifies a bearer token and extracts the caller identity.
// Every operation in this service assumes the identity was verified by the
// issuing side; the middleware only establishes the channel.
type IdentityValidator interface {
	ValidateToken(tokenString string) (id.Identity, error)
}

type contextKeyIdentity struct{}

// GetIdentity retrieves the authenticated caller identity from the context.
func GetIdentity(ctx context.Context) id.Identity {
	identity, ok := ctx.Value(contextKeyIdentity{}).(id.Identity)
	if !ok {
		return ""
	}
	return identity
}

// WithIdentity returns a context carrying the given caller identity.
// Exported for handler tests that bypass the HTTP middleware.
func WithIdentity(ctx context.Context, identity id.Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity{}, identity)
}

// RequireIdentity rejects requests without a valid bearer token and stores
// the verified caller identity in the request context.
func RequireIdentity(validator IdentityValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			identity, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
