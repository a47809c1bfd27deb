package handler

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/adapter/export"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
	"github.com/iho/gosplit/internal/usecase"
)

// ExportGroupService is the group lookup needed by ExportHandler.
type ExportGroupService interface {
	ListExpenses(ctx context.Context, store usecase.GroupStore, group string) ([]domain.Expense, error)
}

// ExportSettlementService is the balance lookup needed by ExportHandler.
type ExportSettlementService interface {
	GetBalances(ctx context.Context, store usecase.GroupStore, group string) (*usecase.BalanceReport, error)
	GetLeaderboard(ctx context.Context, store usecase.GroupStore, group string) ([]settlement.LeaderboardEntry, error)
}

// ExportHandler renders group data as downloadable files.
type ExportHandler struct {
	groupUC      ExportGroupService
	settlementUC ExportSettlementService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(groupUC ExportGroupService, settlementUC ExportSettlementService) *ExportHandler {
	return &ExportHandler{groupUC: groupUC, settlementUC: settlementUC}
}

// ExpensesCSV streams the expense table.
func (h *ExportHandler) ExpensesCSV(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	group := domain.NormalizeName(groupParam(r))
	expenses, err := h.groupUC.ListExpenses(r.Context(), session.Groups, group)
	if err != nil {
		writeDomainError(w, r, "failed to export expenses", err)
		return
	}

	filename := group + "-expenses.csv"
	w.Header().Set("Content-Type", export.ContentTypeCSV)
	w.Header().Set("Content-Disposition", attachment(filename))

	if err := export.WriteExpensesCSV(w, expenses); err != nil {
		logExportFailure(r, filename, err)
	}
}

// BalancesCSV streams the balance sheet.
func (h *ExportHandler) BalancesCSV(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	report, err := h.settlementUC.GetBalances(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to export balances", err)
		return
	}

	filename := report.Group + "-balances.csv"
	w.Header().Set("Content-Type", export.ContentTypeCSV)
	w.Header().Set("Content-Disposition", attachment(filename))

	if err := export.WriteBalancesCSV(w, sheetFromReport(report)); err != nil {
		logExportFailure(r, filename, err)
	}
}

// ReportXLSX renders a workbook with expenses, balances and leaderboard.
// The workbook is built in memory so a rendering failure can still be
// reported as an error response.
func (h *ExportHandler) ReportXLSX(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	group := groupParam(r)
	expenses, err := h.groupUC.ListExpenses(r.Context(), session.Groups, group)
	if err != nil {
		writeDomainError(w, r, "failed to export report", err)
		return
	}

	report, err := h.settlementUC.GetBalances(r.Context(), session.Groups, group)
	if err != nil {
		writeDomainError(w, r, "failed to export report", err)
		return
	}

	board, err := h.settlementUC.GetLeaderboard(r.Context(), session.Groups, group)
	if err != nil {
		writeDomainError(w, r, "failed to export report", err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteGroupXLSX(&buf, export.GroupReport{
		Group:       report.Group,
		Expenses:    expenses,
		Balances:    sheetFromReport(report),
		Leaderboard: board,
	})
	if err != nil {
		writeDomainError(w, r, "failed to export report", err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", attachment(report.Group+"-report.xlsx"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func sheetFromReport(report *usecase.BalanceReport) settlement.BalanceSheet {
	sheet := make(settlement.BalanceSheet, len(report.Rows))
	for i, row := range report.Rows {
		sheet[i] = settlement.MemberBalance{Member: row.Member, Balance: row.Balance}
	}
	return sheet
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// logExportFailure records a write error after headers were sent.
func logExportFailure(r *http.Request, filename string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("file", filename).Msg("export interrupted")
}
