// Package identity resolves the acting user for each request. Credential
// storage and token issuance live in the auth gateway in front of this
// service; by the time a request arrives here the gateway has already
// authenticated it and stamped the user's ID onto the X-User-ID header.
package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// UserHeader carries the authenticated user's UUID, set by the auth gateway.
const UserHeader = "X-User-ID"

type contextKey struct{}

var userKey = contextKey{}

// WithUser attaches the acting user's ID to the context.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// FromContext returns the acting user's ID for the request.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userKey).(uuid.UUID)
	return userID, ok
}

// Middleware rejects requests without a valid user identity and attaches the
// resolved user ID to the request context for downstream handlers.
func Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header(UserHeader)
		if header == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing user identity")
			return
		}

		userID, err := uuid.FromString(header)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid user identity")
			return
		}

		next(huma.WithValue(ctx, userKey, userID))
	}
}
