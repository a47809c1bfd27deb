package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
)

// SettlementUseCase answers balance queries for a group.
type SettlementUseCase struct{}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase() *SettlementUseCase {
	return &SettlementUseCase{}
}

// BalanceRow is one member of a balance report.
type BalanceRow struct {
	Member   string
	Balance  decimal.Decimal
	Standing settlement.Standing
	Paid     bool
}

// BalanceReport is the balance sheet of a group with each row classified.
type BalanceReport struct {
	Group     string
	Rows      []BalanceRow
	Partition settlement.Partition
}

// ConsistencyReport compares the raw sheet with the overridden one.
type ConsistencyReport struct {
	Group      string
	RawSum     decimal.Decimal
	FinalSum   decimal.Decimal
	Conserved  bool
	Discarded  decimal.Decimal
	Overridden []string
}

// GetBalances computes the balance sheet of a group.
func (uc *SettlementUseCase) GetBalances(ctx context.Context, store GroupStore, group string) (*BalanceReport, error) {
	g, sheet, err := uc.load(ctx, store, group)
	if err != nil {
		return nil, err
	}

	rows := make([]BalanceRow, len(sheet))
	for i, row := range sheet {
		rows[i] = BalanceRow{
			Member:   row.Member,
			Balance:  row.Balance,
			Standing: settlement.Classify(row.Balance),
			Paid:     g.IsPaid(row.Member),
		}
	}

	return &BalanceReport{
		Group:     g.Name,
		Rows:      rows,
		Partition: settlement.PartitionSheet(sheet),
	}, nil
}

// GetLeaderboard ranks the members of a group by balance.
func (uc *SettlementUseCase) GetLeaderboard(ctx context.Context, store GroupStore, group string) ([]settlement.LeaderboardEntry, error) {
	_, sheet, err := uc.load(ctx, store, group)
	if err != nil {
		return nil, err
	}

	return settlement.RankLeaderboard(sheet), nil
}

// GetEligiblePayees lists the members who may receive a payment.
func (uc *SettlementUseCase) GetEligiblePayees(ctx context.Context, store GroupStore, group string) ([]settlement.MemberBalance, error) {
	_, sheet, err := uc.load(ctx, store, group)
	if err != nil {
		return nil, err
	}

	return settlement.EligiblePayees(sheet), nil
}

// SuggestTransfers proposes payments that settle the group.
func (uc *SettlementUseCase) SuggestTransfers(ctx context.Context, store GroupStore, group string) ([]settlement.Transfer, error) {
	_, sheet, err := uc.load(ctx, store, group)
	if err != nil {
		return nil, err
	}

	return settlement.SuggestTransfers(sheet), nil
}

// CheckConsistency reports whether the raw sheet is conserved and how much
// the paid-status override removed from it.
func (uc *SettlementUseCase) CheckConsistency(ctx context.Context, store GroupStore, group string) (*ConsistencyReport, error) {
	g, err := store.Get(ctx, domain.NormalizeName(group))
	if err != nil {
		return nil, err
	}

	raw, err := settlement.ComputeRawBalances(g.Members, g.Expenses)
	if err != nil {
		return nil, err
	}

	final, err := settlement.ComputeBalances(g.Members, g.Expenses, g.PaidStatus)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		Group:      g.Name,
		RawSum:     raw.Sum(),
		FinalSum:   final.Sum(),
		Conserved:  settlement.CheckConservation(raw) == nil,
		Discarded:  decimal.Zero,
		Overridden: []string{},
	}

	for _, row := range raw {
		if !g.IsPaid(row.Member) {
			continue
		}
		report.Overridden = append(report.Overridden, row.Member)
		report.Discarded = report.Discarded.Add(row.Balance)
	}

	return report, nil
}

func (uc *SettlementUseCase) load(ctx context.Context, store GroupStore, group string) (*domain.Group, settlement.BalanceSheet, error) {
	g, err := store.Get(ctx, domain.NormalizeName(group))
	if err != nil {
		return nil, nil, err
	}

	sheet, err := settlement.ComputeBalances(g.Members, g.Expenses, g.PaidStatus)
	if err != nil {
		return nil, nil, err
	}

	return g, sheet, nil
}
