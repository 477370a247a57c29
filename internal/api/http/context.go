package http

import (
	"context"

	"venuebook-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// callerClaims returns the authenticated caller's claims. Handlers behind the
// auth middleware can rely on the second return being true.
func callerClaims(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}
