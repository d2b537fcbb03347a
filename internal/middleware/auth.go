package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
	CtxRequestID
)

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	// browsers cannot set headers on a websocket handshake
	return r.URL.Query().Get("token")
}

// Auth puts verified session claims into the request context. Requests
// without a valid token pass through unauthenticated; handlers decide
// whether that is acceptable.
func Auth(logger *slog.Logger, tokens *config.Tokens) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Debug("rejected session token", slog.Any("error", err))
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
