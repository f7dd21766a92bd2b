package dataroom

import "context"

// Identity resolves the user behind a request
type Identity interface {
	// CurrentUserID returns the authenticated user, or false when there is none
	CurrentUserID(ctx context.Context) (string, bool)
}
