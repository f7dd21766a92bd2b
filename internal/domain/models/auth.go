package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims is the JWT claim set issued by Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"` // "authenticated" or "anon"
	AAL         string `json:"aal"`
	SessionID   string `json:"session_id"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// GetUserID returns the subject claim, which identifies the data room owner
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}
