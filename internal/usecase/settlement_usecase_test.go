package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
	"github.com/iho/gosplit/internal/usecase"
)

func TestSettlementUseCase_GetBalances(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, "trip", "A", "B", "C")
	addExpense(t, store, "trip", "90", "A", "A", "B", "C")

	uc := usecase.NewSettlementUseCase()
	report, err := uc.GetBalances(ctx, store, "trip")
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "A", report.Rows[0].Member)
	assert.True(t, report.Rows[0].Balance.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, settlement.StatusOwed, report.Rows[0].Standing.Status)
	assert.Equal(t, settlement.StatusOwing, report.Rows[1].Standing.Status)
	assert.True(t, report.Rows[1].Standing.Amount.Equal(decimal.NewFromInt(30)))
	assert.Len(t, report.Partition.Owing, 2)
	assert.Len(t, report.Partition.Owed, 1)

	_, err = uc.GetBalances(ctx, store, "nope")
	require.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestSettlementUseCase_PaidOverride(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, "trip", "A", "B", "C")
	addExpense(t, store, "trip", "90", "A", "A", "B", "C")
	require.NoError(t, usecase.NewGroupUseCase(&sequenceIDs{}, nil).SetPaidStatus(ctx, store, "trip", "B", true))

	uc := usecase.NewSettlementUseCase()
	report, err := uc.GetBalances(ctx, store, "trip")
	require.NoError(t, err)

	assert.True(t, report.Rows[1].Balance.IsZero())
	assert.True(t, report.Rows[1].Paid)
	assert.Equal(t, settlement.StatusSettled, report.Rows[1].Standing.Status)

	consistency, err := uc.CheckConsistency(ctx, store, "trip")
	require.NoError(t, err)
	assert.True(t, consistency.Conserved)
	assert.True(t, consistency.RawSum.IsZero())
	assert.True(t, consistency.FinalSum.Equal(decimal.NewFromInt(30)))
	assert.True(t, consistency.Discarded.Equal(decimal.NewFromInt(-30)))
	assert.Equal(t, []string{"B"}, consistency.Overridden)
}

func TestSettlementUseCase_Leaderboard(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, "trip", "A", "B", "C")
	addExpense(t, store, "trip", "100", "A", "A", "B")
	addExpense(t, store, "trip", "60", "B", "A", "B")

	board, err := usecase.NewSettlementUseCase().GetLeaderboard(ctx, store, "trip")
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, []string{"A", "C", "B"}, []string{board[0].Member, board[1].Member, board[2].Member})
	assert.Equal(t, 1, board[0].Rank)
}

func TestSettlementUseCase_PayeesAndTransfers(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, "trip", "A", "B", "C")
	addExpense(t, store, "trip", "90", "A", "A", "B", "C")

	uc := usecase.NewSettlementUseCase()

	payees, err := uc.GetEligiblePayees(ctx, store, "trip")
	require.NoError(t, err)
	require.Len(t, payees, 1)
	assert.Equal(t, "A", payees[0].Member)

	transfers, err := uc.SuggestTransfers(ctx, store, "trip")
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	for _, tr := range transfers {
		assert.Equal(t, "A", tr.To)
		assert.True(t, tr.Amount.Equal(decimal.NewFromInt(30)))
	}
}

func TestSettlementUseCase_EmptyGroup(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, "empty")

	report, err := usecase.NewSettlementUseCase().GetBalances(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
}
