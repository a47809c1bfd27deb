package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/gosplit/internal/settlement"
)

func TestWriteGroupXLSX(t *testing.T) {
	sheet := settlement.BalanceSheet{
		{Member: "A", Balance: decimal.NewFromInt(60)},
		{Member: "B", Balance: decimal.NewFromInt(-30)},
		{Member: "C", Balance: decimal.NewFromInt(-30)},
	}

	var buf bytes.Buffer
	err := WriteGroupXLSX(&buf, GroupReport{
		Group:       "trip",
		Expenses:    testExpenses(t),
		Balances:    sheet,
		Leaderboard: settlement.RankLeaderboard(sheet),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Expenses", "Balances", "Leaderboard"}, f.GetSheetList())

	expenses, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, []string{"index", "description", "amount", "payer", "participants"}, expenses[0])
	assert.Equal(t, "Dinner, with dessert", expenses[1][1])
	assert.Equal(t, "A, B, C", expenses[1][4])

	balances, err := f.GetRows("Balances")
	require.NoError(t, err)
	require.Len(t, balances, 4)
	assert.Equal(t, "B", balances[2][1])

	leaders, err := f.GetRows("Leaderboard")
	require.NoError(t, err)
	require.Len(t, leaders, 4)
	assert.Equal(t, []string{"1", "A"}, leaders[1][:2])
}
