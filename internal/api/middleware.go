package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"paint-catalog-service/internal/auth"
)

type contextKey int

const claimsContextKey contextKey = iota

// ClaimsFromContext returns the session claims stored by RequireAuth, or
// nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

// RequireAuth validates the bearer token and stores its claims in the
// request context. Requests without a valid session get 401, the API
// analog of being sent back to the sign-in screen.
func (h *HTTPHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="paint-catalog-service"`)
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := h.tokens.Validate(token)
		if err != nil {
			log.Printf("INFO: Rejected bearer token: %v", err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="paint-catalog-service", error="invalid_token"`)
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route subtree to one role. A caller outside the
// subtree gets the same not-found answer as an unknown path: the other
// subtree is simply not there for them, and nothing privileged leaks.
func (h *HTTPHandler) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.EffectiveRole() != role {
				h.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
