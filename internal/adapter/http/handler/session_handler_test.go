package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/usecase"
)

type sessionServiceStub struct {
	startFn func(ctx context.Context) (*usecase.Session, string, error)
	ended   string
}

func (s *sessionServiceStub) Start(ctx context.Context) (*usecase.Session, string, error) {
	return s.startFn(ctx)
}

func (s *sessionServiceStub) End(ctx context.Context, sessionID string) error {
	s.ended = sessionID
	return nil
}

func TestSessionHandler_Create(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	handler := NewSessionHandler(&sessionServiceStub{
		startFn: func(ctx context.Context) (*usecase.Session, string, error) {
			return &usecase.Session{ID: "s1", CreatedAt: created}, "tok", nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(t, http.MethodPost, "/sessions", nil, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.SessionResponse
	decodeBody(t, rec, &resp)
	if resp.SessionID != "s1" || resp.Token != "tok" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected session response: %+v", resp)
	}
}

func TestSessionHandler_CreateFailure(t *testing.T) {
	handler := NewSessionHandler(&sessionServiceStub{
		startFn: func(ctx context.Context) (*usecase.Session, string, error) {
			return nil, "", errors.New("signing failed")
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(t, http.MethodPost, "/sessions", nil, nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	stub := &sessionServiceStub{}
	handler := NewSessionHandler(stub)

	rec := httptest.NewRecorder()
	handler.Delete(rec, newRequest(t, http.MethodDelete, "/sessions/current", nil, newTestSession()))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.ended != "sess-1" {
		t.Fatalf("expected caller's session to end, got %q", stub.ended)
	}
}
