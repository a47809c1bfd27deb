package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
)

const (
	sheetExpenses    = "Expenses"
	sheetBalances    = "Balances"
	sheetLeaderboard = "Leaderboard"

	// numFmtAmount is the built-in "#,##0.00" number format.
	numFmtAmount = 4
)

// GroupReport is everything rendered into a group workbook.
type GroupReport struct {
	Group       string
	Expenses    []domain.Expense
	Balances    settlement.BalanceSheet
	Leaderboard []settlement.LeaderboardEntry
}

// WriteGroupXLSX renders a workbook with expense, balance and leaderboard
// sheets.
func WriteGroupXLSX(w io.Writer, report GroupReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetExpenses); err != nil {
		return err
	}
	for _, name := range []string{sheetBalances, sheetLeaderboard} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2E86C1"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return err
	}

	expenseRows := make([][]interface{}, len(report.Expenses))
	for i, e := range report.Expenses {
		expenseRows[i] = []interface{}{
			i + 1,
			e.Description(),
			e.Amount().InexactFloat64(),
			e.Payer(),
			strings.Join(e.Participants(), participantSeparator),
		}
	}

	balanceRows := make([][]interface{}, len(report.Balances))
	for i, row := range report.Balances {
		balanceRows[i] = []interface{}{i + 1, row.Member, row.Balance.Round(domain.AmountScale).InexactFloat64()}
	}

	leaderRows := make([][]interface{}, len(report.Leaderboard))
	for i, entry := range report.Leaderboard {
		leaderRows[i] = []interface{}{entry.Rank, entry.Member, entry.Balance.Round(domain.AmountScale).InexactFloat64()}
	}

	tables := []struct {
		sheet     string
		header    []string
		rows      [][]interface{}
		amountCol string
	}{
		{sheetExpenses, expenseHeader, expenseRows, "C"},
		{sheetBalances, balanceHeader, balanceRows, "C"},
		{sheetLeaderboard, []string{"rank", "member", "balance"}, leaderRows, "C"},
	}

	for _, t := range tables {
		if err := writeTable(f, t.sheet, t.header, t.rows, headerStyle, amountStyle, t.amountCol); err != nil {
			return fmt.Errorf("write sheet %s: %w", t.sheet, err)
		}
	}

	if report.Group != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: report.Group}); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle, amountStyle int, amountCol string) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		start := fmt.Sprintf("%s2", amountCol)
		end := fmt.Sprintf("%s%d", amountCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, start, end, amountStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "B", lastCol, 18)
}
