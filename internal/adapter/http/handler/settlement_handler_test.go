package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/usecase"
)

func TestSettlementHandler_Balances(t *testing.T) {
	session := newTestSession()
	seedGroup(t, session, "Trip", []string{"A", "B", "C"}, []string{"90", "A", "A", "B", "C"})
	handler := NewSettlementHandler(usecase.NewSettlementUseCase())

	rec := httptest.NewRecorder()
	handler.Balances(rec, newRequest(t, http.MethodGet, "/groups/Trip/balances", nil, session, "group", "Trip"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BalancesResponse
	decodeBody(t, rec, &resp)

	want := map[string]string{"A": "60.00", "B": "-30.00", "C": "-30.00"}
	for _, row := range resp.Balances {
		if want[row.Member] != row.Balance {
			t.Fatalf("%s: got %s, want %s", row.Member, row.Balance, want[row.Member])
		}
	}
	if len(resp.Owing) != 2 || len(resp.Owed) != 1 {
		t.Fatalf("unexpected partition: %+v", resp)
	}
}

func TestSettlementHandler_Leaderboard(t *testing.T) {
	session := newTestSession()
	seedGroup(t, session, "Trip", []string{"A", "B", "C"},
		[]string{"100", "A", "A", "B"},
		[]string{"60", "B", "A", "B"},
	)
	handler := NewSettlementHandler(usecase.NewSettlementUseCase())

	rec := httptest.NewRecorder()
	handler.Leaderboard(rec, newRequest(t, http.MethodGet, "/groups/Trip/leaderboard", nil, session, "group", "Trip"))

	var resp dto.LeaderboardResponse
	decodeBody(t, rec, &resp)

	order := []string{"A", "C", "B"}
	for i, member := range order {
		if resp.Entries[i].Member != member || resp.Entries[i].Rank != i+1 {
			t.Fatalf("entry %d = %+v, want %s", i, resp.Entries[i], member)
		}
	}
}

func TestSettlementHandler_PayeesTransfersConsistency(t *testing.T) {
	session := newTestSession()
	seedGroup(t, session, "Trip", []string{"A", "B", "C"}, []string{"90", "A", "A", "B", "C"})
	if err := usecase.NewGroupUseCase(&sequenceIDs{}, nil).SetPaidStatus(t.Context(), session.Groups, "Trip", "B", true); err != nil {
		t.Fatalf("failed to set paid: %v", err)
	}
	handler := NewSettlementHandler(usecase.NewSettlementUseCase())

	rec := httptest.NewRecorder()
	handler.Payees(rec, newRequest(t, http.MethodGet, "/groups/Trip/payees", nil, session, "group", "Trip"))
	var payees dto.PayeesResponse
	decodeBody(t, rec, &payees)
	if len(payees.Payees) != 1 || payees.Payees[0].Member != "A" {
		t.Fatalf("unexpected payees: %+v", payees)
	}

	rec = httptest.NewRecorder()
	handler.Transfers(rec, newRequest(t, http.MethodGet, "/groups/Trip/transfers", nil, session, "group", "Trip"))
	var transfers dto.TransfersResponse
	decodeBody(t, rec, &transfers)
	if len(transfers.Transfers) != 1 || transfers.Transfers[0] != (dto.TransferResponse{From: "C", To: "A", Amount: "30.00"}) {
		t.Fatalf("unexpected transfers: %+v", transfers)
	}

	rec = httptest.NewRecorder()
	handler.Consistency(rec, newRequest(t, http.MethodGet, "/groups/Trip/consistency", nil, session, "group", "Trip"))
	var consistency dto.ConsistencyResponse
	decodeBody(t, rec, &consistency)
	if !consistency.Conserved || consistency.Discarded != "-30.00" || consistency.FinalSum != "30.00" {
		t.Fatalf("unexpected consistency report: %+v", consistency)
	}
}

func TestSettlementHandler_GroupNotFound(t *testing.T) {
	handler := NewSettlementHandler(usecase.NewSettlementUseCase())

	rec := httptest.NewRecorder()
	handler.Balances(rec, newRequest(t, http.MethodGet, "/groups/nope/balances", nil, newTestSession(), "group", "nope"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
