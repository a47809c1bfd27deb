package settlement

import (
	"slices"

	"github.com/shopspring/decimal"
)

// minTransfer is the smallest amount worth suggesting; anything below is
// rounding noise.
var minTransfer = decimal.New(1, -2)

// Transfer is a suggested payment that reduces outstanding balances.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}

type party struct {
	member    string
	remaining decimal.Decimal
}

// SuggestTransfers proposes payments that settle the sheet, matching the
// largest debtor with the largest creditor until either side runs out.
// On a conserved sheet every balance is cleared; after a paid-status
// override one side may be left with an unmatched remainder.
func SuggestTransfers(sheet BalanceSheet) []Transfer {
	var debtors, creditors []party
	for _, row := range sheet {
		switch row.Balance.Sign() {
		case -1:
			debtors = append(debtors, party{member: row.Member, remaining: row.Balance.Neg()})
		case 1:
			creditors = append(creditors, party{member: row.Member, remaining: row.Balance})
		}
	}

	byRemaining := func(a, b party) int { return b.remaining.Cmp(a.remaining) }
	slices.SortStableFunc(debtors, byRemaining)
	slices.SortStableFunc(creditors, byRemaining)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := decimal.Min(d.remaining, c.remaining)
		if amount.GreaterThanOrEqual(minTransfer) {
			transfers = append(transfers, Transfer{From: d.member, To: c.member, Amount: amount})
		}

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if d.remaining.LessThan(minTransfer) {
			i++
		}
		if c.remaining.LessThan(minTransfer) {
			j++
		}
	}

	return transfers
}
