package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, Features{}).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_ReadinessWithoutRedis(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, Features{Summaries: true}).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || resp["redis"] != "disabled" || resp["summaries"] != "enabled" || resp["payments"] != "disabled" {
		t.Fatalf("unexpected readiness: %d %v", rec.Code, resp)
	}
}

func TestHealthHandler_ReadinessChecksRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	handler := NewHealthHandler(client, Features{})

	rec := httptest.NewRecorder()
	handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	mr.Close()

	rec = httptest.NewRecorder()
	handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when redis is down, got %d", rec.Code)
	}
}
