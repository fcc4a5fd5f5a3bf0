package router

import (
	"log/slog"
	"net/http"

	"github.com/casbin/casbin/v3"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
)

// middlewareAuthorization enforces role-based access on authenticated routes.
// The policy model matches (role, route pattern, method); admin-only routes
// like election management live in the casbin policy, not in handler code.
func middlewareAuthorization(enforcer *casbin.Enforcer, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enforcer == nil {
				next.ServeHTTP(w, r)
				return
			}

			path := matchedRoutePath(r)

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[path]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			claims := jwt.GetAuth(r.Context())
			if claims == nil {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			allowed, err := enforcer.Enforce(claims.Role, path, r.Method)
			if err != nil {
				slog.ErrorContext(r.Context(), "authorization check failed", "role", claims.Role, "path", path, "error", err)
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
				return
			}

			if !allowed {
				writeJSON(w, errorResponse{Message: "You are not allowed to access this resource"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
