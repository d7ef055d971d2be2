package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/dom/rx-portal/internal/config"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity derives the caller identity from the Authorization header and
// stores it on the request context. Requests without a valid bearer token
// stay anonymous unless DevAuthFallback is enabled, in which case a fixed
// doctor identity is substituted so the dev dashboard works without a
// login. The fallback grants a privileged role to anyone, so it must
// never be on outside development.
func Identity(authService *service.AuthService, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromHeader(authService, r)
			if !ok {
				if !cfg.DevAuthFallback {
					next.ServeHTTP(w, r)
					return
				}
				log.Printf("WARN [middleware.Identity] no valid token, using dev fallback identity")
				identity = domain.Identity{
					ID:    uuid.Nil,
					Email: cfg.DevFallbackEmail,
					Role:  domain.RoleDoctor,
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromHeader(authService *service.AuthService, r *http.Request) (domain.Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return domain.Identity{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		log.Printf("ERROR [middleware.Identity] invalid authorization header format")
		return domain.Identity{}, false
	}

	identity, err := authService.ValidateToken(parts[1])
	if err != nil {
		log.Printf("ERROR [middleware.Identity] token validation failed: %v", err)
		return domain.Identity{}, false
	}

	return identity, true
}

// RequireAuth rejects anonymous requests
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose role does not match
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			if identity.Role != role {
				http.Error(w, "Not authorized", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity returns the caller identity set by the Identity middleware
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}
