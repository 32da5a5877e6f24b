package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/digistore/digistore/internal/auth"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenIssuer
}

// Session returns a middleware that authenticates requests from a session
// token. The token is read from the session cookie or an Authorization
// bearer header, resolved to an Identity without any store lookup, and
// injected into the request context.
//
// The identity (including the admin flag) is trusted as of token-issuance
// time; changes to the account take effect at the next login.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			identity, err := cfg.Tokens.Resolve(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that enforces the admin capability.
// Must be applied after Session. The check happens once here at the
// boundary; handlers only ever see a typed Identity.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.IdentityFromContext(r.Context())
			if identity == nil {
				writeSessionError(w)
				return
			}

			if !identity.IsAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"Admin access required"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractSessionToken extracts the session token from the request.
// Supports both the session cookie and "Authorization: Bearer <token>".
func extractSessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// writeSessionError writes a 401 Unauthorized response.
// Uses the same message for all session failures to prevent enumeration.
func writeSessionError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Please sign in to continue"}}`))
}
