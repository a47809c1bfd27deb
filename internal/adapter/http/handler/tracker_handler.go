package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/adapter/export"
	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// TrackerService defines the behavior needed by TrackerHandler.
type TrackerService interface {
	AddExpense(ctx context.Context, store usecase.PersonalStore, date time.Time, item string, amount decimal.Decimal) (domain.PersonalExpense, error)
	MonthSummary(ctx context.Context, store usecase.PersonalStore, year, month int) (*usecase.MonthSummary, error)
}

// TrackerHandler serves the personal monthly log.
type TrackerHandler struct {
	trackerUC TrackerService
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerUC TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerUC: trackerUC}
}

// AddExpense logs a dated personal expense.
func (h *TrackerHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.AddPersonalExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, r, "failed to add personal expense", err)
		return
	}

	expense, err := h.trackerUC.AddExpense(r.Context(), session.Personal, date, req.Item, req.Amount)
	if err != nil {
		writeDomainError(w, r, "failed to add personal expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PersonalExpenseFromDomain(expense))
}

// Month returns the expenses, total and spending days of a month.
func (h *TrackerHandler) Month(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.monthSummary(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthFromUseCase(summary))
}

// ExportMonth streams a month as CSV.
func (h *TrackerHandler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.monthSummary(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("expenses-%04d-%02d.csv", summary.Year, int(summary.Month))
	w.Header().Set("Content-Type", export.ContentTypeCSV)
	w.Header().Set("Content-Disposition", attachment(filename))

	if err := export.WritePersonalCSV(w, summary.Expenses); err != nil {
		logExportFailure(r, filename, err)
	}
}

func (h *TrackerHandler) monthSummary(w http.ResponseWriter, r *http.Request) (*usecase.MonthSummary, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return nil, false
	}

	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil {
		writeError(w, http.StatusBadRequest, "invalid month", "year and month must be numbers")
		return nil, false
	}

	summary, err := h.trackerUC.MonthSummary(r.Context(), session.Personal, year, month)
	if err != nil {
		writeDomainError(w, r, "failed to load month", err)
		return nil, false
	}

	return summary, true
}
