// Package settlement computes net balances for a group of members from
// their shared expenses.
//
// Every function is pure: it reads the snapshot it is given and keeps no
// state between calls. Money is carried as decimal.Decimal; shares are not
// rounded, only display values are.
package settlement

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// ErrConservationViolated is returned when raw balances do not sum to zero.
var ErrConservationViolated = errors.New("balances do not sum to zero")

// MemberBalance is one row of a balance sheet.
// Negative means the member owes money, positive means they are owed.
type MemberBalance struct {
	Member  string
	Balance decimal.Decimal
}

// BalanceSheet maps every roster member to a balance, in roster order.
type BalanceSheet []MemberBalance

// Lookup returns the balance of member.
func (s BalanceSheet) Lookup(member string) (decimal.Decimal, bool) {
	for _, row := range s {
		if row.Member == member {
			return row.Balance, true
		}
	}
	return decimal.Zero, false
}

// Sum returns the sum of all balances.
func (s BalanceSheet) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, row := range s {
		total = total.Add(row.Balance)
	}
	return total
}

// ComputeBalances derives the balance sheet of members from expenses and
// then applies the paid-status override: every member marked paid is
// forced to zero. The discarded amounts are not redistributed, so after
// the override the sheet may no longer sum to zero.
func ComputeBalances(members []string, expenses []domain.Expense, paid map[string]bool) (BalanceSheet, error) {
	sheet, err := ComputeRawBalances(members, expenses)
	if err != nil {
		return nil, err
	}

	for i := range sheet {
		if paid[sheet[i].Member] {
			sheet[i].Balance = decimal.Zero
		}
	}

	return sheet, nil
}

// ComputeRawBalances derives balances without the paid-status override.
// Each expense amount is split evenly among its participants; every
// participant other than the payer moves one share to the payer. The
// payer's own share cancels out. The result always sums to zero.
func ComputeRawBalances(members []string, expenses []domain.Expense) (BalanceSheet, error) {
	index := make(map[string]int, len(members))
	sheet := make(BalanceSheet, 0, len(members))
	for _, m := range members {
		if _, dup := index[m]; dup {
			continue
		}
		index[m] = len(sheet)
		sheet = append(sheet, MemberBalance{Member: m, Balance: decimal.Zero})
	}

	for _, e := range expenses {
		payerIdx, ok := index[e.Payer()]
		if !ok {
			return nil, fmt.Errorf("%w: payer %q of expense %q", domain.ErrUnknownMember, e.Payer(), e.Description())
		}

		n := e.ParticipantCount()
		if n == 0 {
			return nil, domain.ErrNoParticipants
		}
		share := e.Amount().Div(decimal.NewFromInt(int64(n)))

		for _, p := range e.Participants() {
			pIdx, ok := index[p]
			if !ok {
				return nil, fmt.Errorf("%w: participant %q of expense %q", domain.ErrUnknownMember, p, e.Description())
			}
			if pIdx == payerIdx {
				continue
			}
			sheet[pIdx].Balance = sheet[pIdx].Balance.Sub(share)
			sheet[payerIdx].Balance = sheet[payerIdx].Balance.Add(share)
		}
	}

	return sheet, nil
}

// CheckConservation verifies that a raw sheet sums to zero.
func CheckConservation(raw BalanceSheet) error {
	if sum := raw.Sum(); !sum.IsZero() {
		return fmt.Errorf("%w: sum is %s", ErrConservationViolated, sum.String())
	}
	return nil
}

// EligiblePayees returns the members who are owed money, in roster order.
// Only these members are valid payment targets.
func EligiblePayees(sheet BalanceSheet) []MemberBalance {
	payees := make([]MemberBalance, 0, len(sheet))
	for _, row := range sheet {
		if Classify(row.Balance).Status == StatusOwed {
			payees = append(payees, row)
		}
	}
	return payees
}

// IsEligiblePayee reports whether member is owed money on sheet.
func IsEligiblePayee(sheet BalanceSheet, member string) bool {
	return slices.ContainsFunc(EligiblePayees(sheet), func(row MemberBalance) bool {
		return row.Member == member
	})
}
