package settlement

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Status is the settlement standing of a member.
type Status string

const (
	StatusOwing   Status = "owing"
	StatusOwed    Status = "owed"
	StatusSettled Status = "settled"
)

// Standing is a classified balance. Amount is always non-negative.
type Standing struct {
	Status Status
	Amount decimal.Decimal
}

// settledTolerance is half a minor unit. Smaller balances display as 0.00
// and are division leftovers, not debts.
var settledTolerance = decimal.New(5, -3)

// Classify maps a balance to Owing(-balance), Owed(balance) or Settled.
// Balances below half a minor unit in magnitude are Settled.
func Classify(balance decimal.Decimal) Standing {
	if balance.Abs().LessThan(settledTolerance) {
		return Standing{Status: StatusSettled, Amount: decimal.Zero}
	}

	switch balance.Sign() {
	case -1:
		return Standing{Status: StatusOwing, Amount: balance.Neg()}
	case 1:
		return Standing{Status: StatusOwed, Amount: balance}
	default:
		return Standing{Status: StatusSettled, Amount: decimal.Zero}
	}
}

// Partition splits a sheet into who must pay, who must receive and who is
// settled. Each list keeps roster order.
type Partition struct {
	Owing   []MemberBalance
	Owed    []MemberBalance
	Settled []MemberBalance
}

// PartitionSheet classifies every row of sheet.
func PartitionSheet(sheet BalanceSheet) Partition {
	var p Partition
	for _, row := range sheet {
		switch Classify(row.Balance).Status {
		case StatusOwing:
			p.Owing = append(p.Owing, row)
		case StatusOwed:
			p.Owed = append(p.Owed, row)
		default:
			p.Settled = append(p.Settled, row)
		}
	}
	return p
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank    int
	Member  string
	Balance decimal.Decimal
}

// RankLeaderboard orders the sheet by balance, highest first. Ties keep
// roster order. Ranks start at 1.
func RankLeaderboard(sheet BalanceSheet) []LeaderboardEntry {
	rows := slices.Clone(sheet)
	slices.SortStableFunc(rows, func(a, b MemberBalance) int {
		return b.Balance.Cmp(a.Balance)
	})

	board := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		board[i] = LeaderboardEntry{Rank: i + 1, Member: row.Member, Balance: row.Balance}
	}
	return board
}
