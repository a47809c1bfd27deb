package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSuggestTransfers_SettlesConservedSheet(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: d("60")},
		{Member: "B", Balance: d("-30")},
		{Member: "C", Balance: d("-45")},
		{Member: "D", Balance: d("15")},
	}

	transfers := SuggestTransfers(sheet)

	net := map[string]decimal.Decimal{}
	for _, row := range sheet {
		net[row.Member] = row.Balance
	}
	for _, tr := range transfers {
		net[tr.From] = net[tr.From].Add(tr.Amount)
		net[tr.To] = net[tr.To].Sub(tr.Amount)
	}
	for member, balance := range net {
		assert.True(t, balance.IsZero(), "%s left with %s", member, balance)
	}

	require.NotEmpty(t, transfers)
	assert.Equal(t, Transfer{From: "C", To: "A", Amount: d("45")}, transfers[0])
}

func TestSuggestTransfers_NothingOwed(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: decimal.Zero},
		{Member: "B", Balance: decimal.Zero},
	}
	assert.Empty(t, SuggestTransfers(sheet))
}

func TestSuggestTransfers_UnbalancedAfterOverride(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: d("60")},
		{Member: "B", Balance: decimal.Zero},
		{Member: "C", Balance: d("-30")},
	}

	transfers := SuggestTransfers(sheet)
	require.Len(t, transfers, 1)
	assert.Equal(t, "C", transfers[0].From)
	assert.Equal(t, "A", transfers[0].To)
	assert.True(t, transfers[0].Amount.Equal(d("30")))
}

func TestSuggestTransfers_DropsDust(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: d("0.004")},
		{Member: "B", Balance: d("-0.004")},
	}
	assert.Empty(t, SuggestTransfers(sheet))
}
