package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// SessionContextKey is the context key for the resolved session
	SessionContextKey ContextKey = "session"
)

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*usecase.Session, error)
}

// SessionAuth requires a bearer token bound to a live session and puts the
// session into the request context.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			session, err := resolver.Resolve(r.Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrExpiredToken):
					writeError(w, http.StatusUnauthorized, "session token expired")
				case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrSessionNotFound):
					writeError(w, http.StatusUnauthorized, "invalid or expired session")
				default:
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("session lookup failed")
					writeError(w, http.StatusInternalServerError, "session lookup failed")
				}
				return
			}

			logger := zerolog.Ctx(r.Context()).With().Str("session_id", session.ID).Logger()
			ctx := WithSession(logger.WithContext(r.Context()), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *usecase.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// SessionFromContext extracts the resolved session from context
func SessionFromContext(ctx context.Context) (*usecase.Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*usecase.Session)
	return session, ok && session != nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
