package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
	"github.com/iho/gosplit/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	GetBalances(ctx context.Context, store usecase.GroupStore, group string) (*usecase.BalanceReport, error)
	GetLeaderboard(ctx context.Context, store usecase.GroupStore, group string) ([]settlement.LeaderboardEntry, error)
	GetEligiblePayees(ctx context.Context, store usecase.GroupStore, group string) ([]settlement.MemberBalance, error)
	SuggestTransfers(ctx context.Context, store usecase.GroupStore, group string) ([]settlement.Transfer, error)
	CheckConsistency(ctx context.Context, store usecase.GroupStore, group string) (*usecase.ConsistencyReport, error)
}

// SettlementHandler serves balance queries.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Balances returns each member's balance and standing.
func (h *SettlementHandler) Balances(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	report, err := h.settlementUC.GetBalances(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to compute balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromUseCase(report))
}

// Leaderboard returns members ranked by balance.
func (h *SettlementHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	board, err := h.settlementUC.GetLeaderboard(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to rank members", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LeaderboardFromSettlement(domain.NormalizeName(groupParam(r)), board))
}

// Payees returns the members who may receive a payment.
func (h *SettlementHandler) Payees(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	payees, err := h.settlementUC.GetEligiblePayees(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to list payees", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PayeesFromSettlement(domain.NormalizeName(groupParam(r)), payees))
}

// Transfers suggests payments that settle the group.
func (h *SettlementHandler) Transfers(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	transfers, err := h.settlementUC.SuggestTransfers(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to suggest transfers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromSettlement(domain.NormalizeName(groupParam(r)), transfers))
}

// Consistency reports whether balances are conserved.
func (h *SettlementHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	report, err := h.settlementUC.CheckConsistency(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to check consistency", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}
