package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// readinessTimeout bounds dependency checks.
const readinessTimeout = 5 * time.Second

// Features reports which optional collaborators are configured.
type Features struct {
	Summaries bool
	Payments  bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	redisClient *redis.Client
	features    Features
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil when
// Redis is not configured.
func NewHealthHandler(redisClient *redis.Client, features Features) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		features:    features,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := map[string]string{
		"status":    "ready",
		"redis":     "disabled",
		"summaries": enabled(h.features.Summaries),
		"payments":  enabled(h.features.Payments),
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
