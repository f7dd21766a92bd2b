package auth

import "dataroom/internal/domain/models"

// JWTVerifier validates bearer tokens for the auth middleware.
type JWTVerifier interface {
	// VerifyToken returns the claims of a valid, signed, unexpired token
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources such as the JWKS client
	Close() error
}
