package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/adapter/repository/memory"
	"github.com/iho/gosplit/internal/usecase"
)

type sequenceIDs struct{ n int }

func (s *sequenceIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// seededStore returns a store holding one group with the given members.
func seededStore(t *testing.T, group string, members ...string) *memory.GroupStore {
	t.Helper()

	ctx := context.Background()
	store := memory.NewGroupStore()
	uc := usecase.NewGroupUseCase(&sequenceIDs{}, nil)

	_, err := uc.CreateGroup(ctx, store, group)
	require.NoError(t, err)
	for _, m := range members {
		_, err := uc.AddMember(ctx, store, group, m)
		require.NoError(t, err)
	}

	return store
}

func addExpense(t *testing.T, store usecase.GroupStore, group, amount, payer string, participants ...string) {
	t.Helper()

	uc := usecase.NewGroupUseCase(&sequenceIDs{}, nil)
	_, err := uc.AddExpense(context.Background(), store, usecase.AddExpenseInput{
		Group:        group,
		Description:  "expense",
		Amount:       decimal.RequireFromString(amount),
		Payer:        payer,
		Participants: participants,
	})
	require.NoError(t, err)
}
