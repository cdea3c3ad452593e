package auth

import (
	"net/http"
	"strings"
	"time"

	"travelapi/internal/api"
	"travelapi/pkg/config"
)

// AdminAuth guards the back-office routes.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// In dev, if Authorization is missing, it can fall back to X-Admin-Email to
// keep local testing simple.
func AdminAuth(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				email, err := VerifyToken(token, cfg.Admin.JWTSecret, time.Now())
				if err != nil {
					api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid session token")
					return
				}
				next.ServeHTTP(w, r.WithContext(api.WithAdmin(r.Context(), &api.Admin{Email: email})))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" {
				if email := strings.TrimSpace(r.Header.Get("X-Admin-Email")); email != "" {
					next.ServeHTTP(w, r.WithContext(api.WithAdmin(r.Context(), &api.Admin{Email: email})))
					return
				}
			}

			api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing session token")
		})
	}
}
