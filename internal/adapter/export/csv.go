// Package export renders group and personal data as CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
)

// Content types of the rendered files.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	expenseHeader  = []string{"index", "description", "amount", "payer", "participants"}
	balanceHeader  = []string{"index", "member", "balance"}
	personalHeader = []string{"date", "item", "amount"}
)

// participantSeparator joins participant names in a single cell.
const participantSeparator = ", "

// WriteExpensesCSV writes one row per expense, indexed from 1.
func WriteExpensesCSV(w io.Writer, expenses []domain.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return err
	}

	for i, e := range expenses {
		record := []string{
			strconv.Itoa(i + 1),
			e.Description(),
			e.Amount().StringFixed(domain.AmountScale),
			e.Payer(),
			strings.Join(e.Participants(), participantSeparator),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBalancesCSV writes one row per member in roster order, indexed from 1.
func WriteBalancesCSV(w io.Writer, sheet settlement.BalanceSheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(balanceHeader); err != nil {
		return err
	}

	for i, row := range sheet {
		record := []string{
			strconv.Itoa(i + 1),
			row.Member,
			row.Balance.StringFixed(domain.AmountScale),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePersonalCSV writes a month of personal expenses.
func WritePersonalCSV(w io.Writer, expenses []domain.PersonalExpense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(personalHeader); err != nil {
		return err
	}

	for _, e := range expenses {
		record := []string{
			e.Date.Format(domain.DateLayout),
			e.Item,
			e.Amount.StringFixed(domain.AmountScale),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
