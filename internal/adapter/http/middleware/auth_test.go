package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

type stubResolver struct {
	session *usecase.Session
	err     error
	token   string
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*usecase.Session, error) {
	s.token = token
	return s.session, s.err
}

func TestSessionAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		resolver   *stubResolver
		wantStatus int
	}{
		{"missing header", "", &stubResolver{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", &stubResolver{}, http.StatusUnauthorized},
		{"empty token", "Bearer ", &stubResolver{}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", &stubResolver{err: domain.ErrInvalidToken}, http.StatusUnauthorized},
		{"expired token", "Bearer old", &stubResolver{err: domain.ErrExpiredToken}, http.StatusUnauthorized},
		{"evicted session", "Bearer gone", &stubResolver{err: domain.ErrSessionNotFound}, http.StatusUnauthorized},
		{"lookup failure", "Bearer tok", &stubResolver{err: errors.New("boom")}, http.StatusInternalServerError},
		{"valid", "Bearer tok", &stubResolver{session: &usecase.Session{ID: "s1"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *usecase.Session
			handler := SessionAuth(tt.resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = SessionFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}

			if tt.wantStatus == http.StatusOK {
				if got == nil || got.ID != "s1" {
					t.Fatalf("expected session in context, got %+v", got)
				}
				if tt.resolver.token != "tok" {
					t.Fatalf("expected bare token to be resolved, got %q", tt.resolver.token)
				}
			} else if got != nil {
				t.Fatalf("handler must not run on rejected requests")
			}
		})
	}
}

func TestSessionFromContextEmpty(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session in empty context")
	}
}
