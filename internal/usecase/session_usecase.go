package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Session is the state of one interactive user. Nothing in it is shared
// with other sessions.
type Session struct {
	ID        string
	Groups    GroupStore
	Personal  PersonalStore
	CreatedAt time.Time
}

// SessionUseCase opens, resolves and closes sessions.
type SessionUseCase struct {
	sessions SessionRepository
	tokens   TokenManager
	idGen    IDGenerator
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(sessions SessionRepository, tokens TokenManager, idGen IDGenerator) *SessionUseCase {
	return &SessionUseCase{
		sessions: sessions,
		tokens:   tokens,
		idGen:    idGen,
	}
}

// Start opens a fresh, empty session and returns it with its bearer token.
func (uc *SessionUseCase) Start(ctx context.Context) (*Session, string, error) {
	session, err := uc.sessions.Create(ctx, uc.idGen.Generate())
	if err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Issue(session.ID)
	if err != nil {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, "", err
	}

	zerolog.Ctx(ctx).Info().Str("session_id", session.ID).Msg("session started")

	return session, token, nil
}

// Resolve verifies a bearer token and returns its live session.
func (uc *SessionUseCase) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := uc.tokens.SessionID(token)
	if err != nil {
		return nil, err
	}

	return uc.sessions.Get(ctx, id)
}

// End discards a session and everything in it.
func (uc *SessionUseCase) End(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("session_id", sessionID).Msg("session ended")

	return nil
}
