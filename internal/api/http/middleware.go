package http

import (
	"net/http"
	"strings"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/security"
)

// AuthMiddleware validates the Bearer token and stores the caller's claims on
// the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.AuthenticationError("missing bearer token"))
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.AuthenticationError("invalid or expired token"))
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, domain.AuthenticationError("access token required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireRole guards a subtree to callers holding one of the given roles.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := callerClaims(r.Context())
			if !ok {
				writeError(w, domain.AuthenticationError("authentication required"))
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.Warn("Role check failed", "user_id", claims.UserID, "role", claims.Role, "path", r.URL.Path)
			writeError(w, domain.AuthorizationError("insufficient permissions"))
		})
	}
}

// LoggingMiddleware traces every request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
