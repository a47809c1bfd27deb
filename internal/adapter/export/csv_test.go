package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
)

func testExpenses(t *testing.T) []domain.Expense {
	t.Helper()

	dinner, err := domain.NewExpense(domain.NewExpenseParams{
		Description:  "Dinner, with dessert",
		Amount:       decimal.NewFromInt(90),
		Payer:        "A",
		Participants: []string{"A", "B", "C"},
	})
	require.NoError(t, err)

	taxi, err := domain.NewExpense(domain.NewExpenseParams{
		Description:  "Taxi",
		Amount:       decimal.RequireFromString("12.5"),
		Payer:        "B",
		Participants: []string{"C"},
	})
	require.NoError(t, err)

	return []domain.Expense{dinner, taxi}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteExpensesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExpensesCSV(&buf, testExpenses(t)))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"index", "description", "amount", "payer", "participants"}, records[0])
	assert.Equal(t, []string{"1", "Dinner, with dessert", "90.00", "A", "A, B, C"}, records[1])
	assert.Equal(t, []string{"2", "Taxi", "12.50", "B", "C"}, records[2])
}

func TestWriteBalancesCSV(t *testing.T) {
	sheet := settlement.BalanceSheet{
		{Member: "A", Balance: decimal.NewFromInt(60)},
		{Member: "B", Balance: decimal.RequireFromString("-33.333333")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBalancesCSV(&buf, sheet))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "A", "60.00"}, records[1])
	assert.Equal(t, []string{"2", "B", "-33.33"}, records[2])
}

func TestWriteBalancesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBalancesCSV(&buf, nil))

	records := readCSV(t, &buf)
	assert.Equal(t, [][]string{{"index", "member", "balance"}}, records)
}

func TestWritePersonalCSV(t *testing.T) {
	e, err := domain.NewPersonalExpense("1", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "Groceries", decimal.NewFromInt(250))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePersonalCSV(&buf, []domain.PersonalExpense{e}))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"date", "item", "amount"}, records[0])
	assert.Equal(t, []string{"2024-03-09", "Groceries", "250.00"}, records[1])
}
