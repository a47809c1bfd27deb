package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/usecase"
)

// SessionService defines the behavior needed by SessionHandler.
type SessionService interface {
	Start(ctx context.Context) (*usecase.Session, string, error)
	End(ctx context.Context, sessionID string) error
}

// SessionHandler opens and closes sessions.
type SessionHandler struct {
	sessionUC SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionUC SessionService) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

// Create opens a new empty session and returns its bearer token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionUC.Start(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to start session", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionFromUseCase(session, token))
}

// Delete ends the caller's session.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.sessionUC.End(r.Context(), session.ID); err != nil {
		writeDomainError(w, r, "failed to end session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
