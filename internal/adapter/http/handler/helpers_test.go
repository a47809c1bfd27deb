package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"wrapped invalid name", fmt.Errorf("%w: too long", domain.ErrInvalidGroupName), http.StatusBadRequest},
		{"no participants", domain.ErrNoParticipants, http.StatusBadRequest},
		{"unknown member", fmt.Errorf("%w: %q", domain.ErrUnknownMember, "Z"), http.StatusUnprocessableEntity},
		{"payee not eligible", domain.ErrPayeeNotEligible, http.StatusUnprocessableEntity},
		{"nothing to summarize", domain.ErrNothingToSummarize, http.StatusUnprocessableEntity},
		{"duplicate group", domain.ErrDuplicateGroup, http.StatusConflict},
		{"duplicate member", domain.ErrDuplicateMember, http.StatusConflict},
		{"group not found", domain.ErrGroupNotFound, http.StatusNotFound},
		{"member not found", domain.ErrMemberNotFound, http.StatusNotFound},
		{"session gone", domain.ErrSessionNotFound, http.StatusUnauthorized},
		{"service disabled", domain.ErrServiceDisabled, http.StatusServiceUnavailable},
		{"external failure", fmt.Errorf("%w: timeout", domain.ErrExternalService), http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteDomainErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeDomainError(rr, req, "failed", errors.New("secret internals"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if rr.Code != http.StatusInternalServerError || resp.Message != "" {
		t.Fatalf("expected bare 500, got %d %+v", rr.Code, resp)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))

	var dst dto.CreateGroupRequest
	if decodeJSON(rr, req, &dst) {
		t.Fatalf("expected decode to fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRequireSessionWithoutMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	if _, ok := requireSession(rr, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("expected no session")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
