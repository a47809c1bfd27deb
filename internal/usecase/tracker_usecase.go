package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// TrackerUseCase manages the personal monthly expense log of a session.
type TrackerUseCase struct {
	idGen IDGenerator
}

// NewTrackerUseCase creates a new TrackerUseCase.
func NewTrackerUseCase(idGen IDGenerator) *TrackerUseCase {
	return &TrackerUseCase{idGen: idGen}
}

// MonthSummary is the personal expense log of one month.
type MonthSummary struct {
	Year     int
	Month    time.Month
	Expenses []domain.PersonalExpense
	Total    decimal.Decimal
	// Days lists the distinct days of the month that have expenses, ascending.
	Days []int
}

// AddExpense records a personal expense.
func (uc *TrackerUseCase) AddExpense(ctx context.Context, store PersonalStore, date time.Time, item string, amount decimal.Decimal) (domain.PersonalExpense, error) {
	expense, err := domain.NewPersonalExpense(uc.idGen.Generate(), date, item, amount)
	if err != nil {
		return domain.PersonalExpense{}, err
	}

	if err := store.Add(ctx, expense); err != nil {
		return domain.PersonalExpense{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("date", expense.Date.Format(domain.DateLayout)).
		Str("amount", expense.Amount.StringFixed(domain.AmountScale)).
		Msg("personal expense added")

	return expense, nil
}

// ListMonth returns the expenses dated in a month, in insertion order.
func (uc *TrackerUseCase) ListMonth(ctx context.Context, store PersonalStore, year, month int) ([]domain.PersonalExpense, error) {
	if err := domain.ValidateMonth(year, month); err != nil {
		return nil, err
	}

	all, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.PersonalExpense, 0, len(all))
	for _, e := range all {
		if e.InMonth(year, time.Month(month)) {
			expenses = append(expenses, e)
		}
	}

	return expenses, nil
}

// MonthSummary totals a month and lists the days that have expenses.
func (uc *TrackerUseCase) MonthSummary(ctx context.Context, store PersonalStore, year, month int) (*MonthSummary, error) {
	expenses, err := uc.ListMonth(ctx, store, year, month)
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{
		Year:     year,
		Month:    time.Month(month),
		Expenses: expenses,
		Total:    decimal.Zero,
		Days:     []int{},
	}

	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		if !slices.Contains(summary.Days, e.Date.Day()) {
			summary.Days = append(summary.Days, e.Date.Day())
		}
	}
	slices.Sort(summary.Days)

	return summary, nil
}
