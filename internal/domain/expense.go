package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an immutable record of money paid by one member on behalf of
// a set of participants. Construct it with NewExpense.
type Expense struct {
	id           string
	description  string
	amount       decimal.Decimal
	payer        string
	participants []string
	createdAt    time.Time
}

// NewExpenseParams holds the fields of a new expense.
type NewExpenseParams struct {
	ID           string
	Description  string
	Amount       decimal.Decimal
	Payer        string
	Participants []string
	CreatedAt    time.Time
}

// NewExpense validates the params and builds an Expense. The amount is
// quantized to two decimals and duplicate participants are collapsed.
// Roster membership is checked by the owning Group, not here.
func NewExpense(p NewExpenseParams) (Expense, error) {
	description := strings.TrimSpace(p.Description)
	if err := ValidateDescription(description); err != nil {
		return Expense{}, err
	}

	if err := ValidateExpenseAmount(p.Amount); err != nil {
		return Expense{}, err
	}

	payer := NormalizeName(p.Payer)
	if payer == "" {
		return Expense{}, fmt.Errorf("%w: payer is required", ErrUnknownMember)
	}

	participants := make([]string, 0, len(p.Participants))
	for _, name := range p.Participants {
		name = NormalizeName(name)
		if name == "" || slices.Contains(participants, name) {
			continue
		}
		participants = append(participants, name)
	}
	if len(participants) == 0 {
		return Expense{}, ErrNoParticipants
	}

	return Expense{
		id:           p.ID,
		description:  description,
		amount:       QuantizeAmount(p.Amount),
		payer:        payer,
		participants: participants,
		createdAt:    p.CreatedAt,
	}, nil
}

func (e Expense) ID() string { return e.id }
func (e Expense) Description() string { return e.description }
func (e Expense) Amount() decimal.Decimal { return e.amount }
func (e Expense) Payer() string { return e.payer }
func (e Expense) CreatedAt() time.Time { return e.createdAt }
func (e Expense) ParticipantCount() int { return len(e.participants) }
func (e Expense) Participants() []string { return slices.Clone(e.participants) }
func (e Expense) HasParticipant(m string) bool { return slices.Contains(e.participants, m) }
