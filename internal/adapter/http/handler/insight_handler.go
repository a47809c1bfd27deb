package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/usecase"
)

// InsightService defines the behavior needed by InsightHandler.
type InsightService interface {
	GenerateSummary(ctx context.Context, store usecase.GroupStore, group string) (*usecase.Summary, error)
}

// InsightHandler serves generated expense summaries.
type InsightHandler struct {
	insightUC InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightUC InsightService) *InsightHandler {
	return &InsightHandler{insightUC: insightUC}
}

// Summarize generates a narrative summary of a group's expenses.
func (h *InsightHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	summary, err := h.insightUC.GenerateSummary(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to generate summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}
