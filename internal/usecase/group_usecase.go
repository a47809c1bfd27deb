package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// GroupUseCase manages groups, members, expenses and paid status inside
// a session's GroupStore.
type GroupUseCase struct {
	idGen    IDGenerator
	recorder Recorder
}

// NewGroupUseCase creates a new GroupUseCase.
func NewGroupUseCase(idGen IDGenerator, recorder Recorder) *GroupUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &GroupUseCase{
		idGen:    idGen,
		recorder: recorder,
	}
}

// CreateGroup creates an empty group.
func (uc *GroupUseCase) CreateGroup(ctx context.Context, store GroupStore, name string) (*domain.Group, error) {
	group, err := domain.NewGroup(name, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := store.Create(ctx, group); err != nil {
		return nil, err
	}

	uc.recorder.GroupCreated()
	zerolog.Ctx(ctx).Info().Str("group", group.Name).Msg("group created")

	return group, nil
}

// ListGroups lists groups in creation order.
func (uc *GroupUseCase) ListGroups(ctx context.Context, store GroupStore) ([]domain.GroupSummary, error) {
	groups, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.GroupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, g.Summary())
	}

	return summaries, nil
}

// GetGroup returns a snapshot of a group.
func (uc *GroupUseCase) GetGroup(ctx context.Context, store GroupStore, name string) (*domain.Group, error) {
	return store.Get(ctx, domain.NormalizeName(name))
}

// AddMember appends a member to a group.
func (uc *GroupUseCase) AddMember(ctx context.Context, store GroupStore, group, member string) (*domain.Group, error) {
	var updated *domain.Group

	err := store.Update(ctx, domain.NormalizeName(group), func(g *domain.Group) error {
		if err := g.AddMember(member); err != nil {
			return err
		}
		updated = g.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("group", updated.Name).Str("member", domain.NormalizeName(member)).Msg("member added")

	return updated, nil
}

// AddExpenseInput represents input for adding an expense.
type AddExpenseInput struct {
	Group        string
	Description  string
	Amount       decimal.Decimal
	Payer        string
	Participants []string
}

// AddExpense validates and appends an expense.
func (uc *GroupUseCase) AddExpense(ctx context.Context, store GroupStore, input AddExpenseInput) (domain.Expense, error) {
	expense, err := domain.NewExpense(domain.NewExpenseParams{
		ID:           uc.idGen.Generate(),
		Description:  input.Description,
		Amount:       input.Amount,
		Payer:        input.Payer,
		Participants: input.Participants,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.Expense{}, err
	}

	err = store.Update(ctx, domain.NormalizeName(input.Group), func(g *domain.Group) error {
		return g.AddExpense(expense)
	})
	if err != nil {
		return domain.Expense{}, err
	}

	uc.recorder.ExpenseAdded(expense.Amount())
	zerolog.Ctx(ctx).Info().
		Str("group", domain.NormalizeName(input.Group)).
		Str("expense_id", expense.ID()).
		Str("amount", expense.Amount().StringFixed(domain.AmountScale)).
		Int("participants", expense.ParticipantCount()).
		Msg("expense added")

	return expense, nil
}

// ListExpenses returns the expenses of a group in insertion order.
func (uc *GroupUseCase) ListExpenses(ctx context.Context, store GroupStore, group string) ([]domain.Expense, error) {
	g, err := store.Get(ctx, domain.NormalizeName(group))
	if err != nil {
		return nil, err
	}

	return g.Expenses, nil
}

// SetPaidStatus sets the paid-status override of a member.
func (uc *GroupUseCase) SetPaidStatus(ctx context.Context, store GroupStore, group, member string, paid bool) error {
	err := store.Update(ctx, domain.NormalizeName(group), func(g *domain.Group) error {
		return g.SetPaidStatus(member, paid)
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("group", domain.NormalizeName(group)).
		Str("member", domain.NormalizeName(member)).
		Bool("paid", paid).
		Msg("paid status set")

	return nil
}
