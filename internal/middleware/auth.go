package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"dataroom/internal/auth"
	"dataroom/internal/httputil"
)

// AuthOptions configures AuthMiddleware
type AuthOptions struct {
	// Verifier may be nil when only the dev bypass is in use
	Verifier auth.JWTVerifier
	// DevUserID, when set, is used for requests that carry no bearer token
	DevUserID string
	// Public paths skip authentication
	Public []string
	Logger *slog.Logger
}

// AuthMiddleware attaches the authenticated user ID to the request context.
// Requests without a valid bearer token get 401.
func AuthMiddleware(opts AuthOptions) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(opts.Public))
	for _, p := range opts.Public {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, hasToken := bearerToken(r)
			if !hasToken {
				if opts.DevUserID != "" {
					next.ServeHTTP(w, httputil.WithUserID(r, opts.DevUserID))
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if opts.Verifier == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "token verification unavailable")
				return
			}
			claims, err := opts.Verifier.VerifyToken(token)
			if err != nil {
				opts.Logger.Debug("authentication failed", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}
