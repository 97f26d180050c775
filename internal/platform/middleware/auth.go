package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"journal-service/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	Subject string
	Scope   string
	JTI     string
}

// HasScope reports whether the space-separated scope claim grants scope.
func (c *JWTClaims) HasScope(scope string) bool {
	for _, granted := range strings.Fields(c.Scope) {
		if granted == scope {
			return true
		}
	}
	return false
}

// GetSubject returns the authenticated caller, or "" when auth is off.
func GetSubject(r *http.Request) string {
	return requestcontext.Subject(r.Context())
}

// RequireAuth rejects requests without a valid bearer token, and with 403
// tokens missing any of requiredScopes. A nil validator disables the check so
// local deployments can run without keys.
func RequireAuth(validator JWTValidator, logger *slog.Logger, requiredScopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			for _, scope := range requiredScopes {
				if !claims.HasScope(scope) {
					logger.WarnContext(ctx, "forbidden - token lacks scope",
						"subject", claims.Subject,
						"jti", claims.JTI,
						"required_scope", scope,
						"request_id", GetRequestID(ctx),
					)
					writeForbidden(w, "Token lacks required scope "+scope)
					return
				}
			}

			ctx = requestcontext.WithSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="journal-service"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}

func writeForbidden(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="journal-service", error="insufficient_scope"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"insufficient_scope","error_description":"` + description + `"}`))
}
