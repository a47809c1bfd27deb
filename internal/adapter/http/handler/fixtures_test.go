package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/adapter/http/middleware"
	"github.com/iho/gosplit/internal/adapter/repository/memory"
	"github.com/iho/gosplit/internal/usecase"
)

type sequenceIDs struct{ n int }

func (s *sequenceIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestSession() *usecase.Session {
	return &usecase.Session{
		ID:       "sess-1",
		Groups:   memory.NewGroupStore(),
		Personal: memory.NewPersonalStore(),
	}
}

// newRequest builds a request carrying session and chi URL params given as
// key/value pairs.
func newRequest(t *testing.T, method, target string, body any, session *usecase.Session, params ...string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)

	if session != nil {
		ctx = middleware.WithSession(ctx, session)
	}

	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// seedGroup creates group with members and the given expenses through the
// real use case. Each expense is amount, payer, participants...
func seedGroup(t *testing.T, session *usecase.Session, group string, members []string, expenses ...[]string) {
	t.Helper()

	ctx := context.Background()
	uc := usecase.NewGroupUseCase(&sequenceIDs{}, nil)

	if _, err := uc.CreateGroup(ctx, session.Groups, group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	for _, m := range members {
		if _, err := uc.AddMember(ctx, session.Groups, group, m); err != nil {
			t.Fatalf("failed to add member: %v", err)
		}
	}
	for _, e := range expenses {
		_, err := uc.AddExpense(ctx, session.Groups, usecase.AddExpenseInput{
			Group:        group,
			Description:  "expense",
			Amount:       decimal.RequireFromString(e[0]),
			Payer:        e[1],
			Participants: e[2:],
		})
		if err != nil {
			t.Fatalf("failed to add expense: %v", err)
		}
	}
}
