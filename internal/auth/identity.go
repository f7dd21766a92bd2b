package auth

import (
	"context"

	"dataroom/internal/httputil"
)

// ContextIdentity reads the user the auth middleware attached to the request context
type ContextIdentity struct{}

// CurrentUserID returns the signed-in user, if any
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	userID := httputil.UserIDFromContext(ctx)
	return userID, userID != ""
}

// StaticIdentity always reports the same user. Used by the seeder.
type StaticIdentity string

// CurrentUserID returns the fixed user
func (s StaticIdentity) CurrentUserID(context.Context) (string, bool) {
	return string(s), s != ""
}
