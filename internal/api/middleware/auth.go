package middleware

import (
	"context"
	"net/http"

	"github.com/pongelo/pongelo/internal/api/apierr"
	"github.com/pongelo/pongelo/internal/services/player"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth creates authentication middleware backed by HTTP Basic credentials
func Auth(playerService *player.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="pongelo"`)
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if !playerService.VerifyIdentity(r.Context(), name, password) {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			// Add the verified identity to context
			ctx := context.WithValue(r.Context(), identityContextKey, name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the authenticated player name from the request context
func Identity(ctx context.Context) string {
	identity, _ := ctx.Value(identityContextKey).(string)
	return identity
}

// MustIdentity returns the authenticated player name or panics
func MustIdentity(ctx context.Context) string {
	identity := Identity(ctx)
	if identity == "" {
		panic("no identity in context - auth middleware not applied?")
	}
	return identity
}
