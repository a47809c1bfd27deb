package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Group is a named roster of members together with the expenses they
// share and a per-member paid-status override.
//
// Members and expenses are append-only: there is no removal path.
type Group struct {
	Name       string
	Members    []string
	Expenses   []Expense
	PaidStatus map[string]bool
	CreatedAt  time.Time
}

// NewGroup validates the name and returns an empty group.
func NewGroup(name string, createdAt time.Time) (*Group, error) {
	name = NormalizeName(name)
	if err := ValidateGroupName(name); err != nil {
		return nil, err
	}

	return &Group{
		Name:       name,
		Members:    []string{},
		Expenses:   []Expense{},
		PaidStatus: map[string]bool{},
		CreatedAt:  createdAt,
	}, nil
}

// HasMember reports whether name is on the roster.
func (g *Group) HasMember(name string) bool {
	return slices.Contains(g.Members, name)
}

// AddMember appends a member with paid status false.
func (g *Group) AddMember(name string) error {
	name = NormalizeName(name)
	if err := ValidateMemberName(name); err != nil {
		return err
	}

	if g.HasMember(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateMember, name)
	}

	g.Members = append(g.Members, name)
	g.PaidStatus[name] = false

	return nil
}

// AddExpense appends an expense whose payer and participants are all on
// the roster. The group is left untouched when validation fails.
func (g *Group) AddExpense(e Expense) error {
	if !g.HasMember(e.Payer()) {
		return fmt.Errorf("%w: payer %q is not a member of %q", ErrUnknownMember, e.Payer(), g.Name)
	}

	for _, p := range e.participants {
		if !g.HasMember(p) {
			return fmt.Errorf("%w: participant %q is not a member of %q", ErrUnknownMember, p, g.Name)
		}
	}

	g.Expenses = append(g.Expenses, e)

	return nil
}

// SetPaidStatus sets the paid-status override of a member. Idempotent.
func (g *Group) SetPaidStatus(member string, paid bool) error {
	member = NormalizeName(member)
	if !g.HasMember(member) {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, member)
	}

	g.PaidStatus[member] = paid

	return nil
}

// IsPaid reports the paid-status override of a member, false when unset.
func (g *Group) IsPaid(member string) bool {
	return g.PaidStatus[member]
}

// Clone returns a deep copy. Expenses are immutable and shared by value.
func (g *Group) Clone() *Group {
	paid := maps.Clone(g.PaidStatus)
	if paid == nil {
		paid = map[string]bool{}
	}

	return &Group{
		Name:       g.Name,
		Members:    slices.Clone(g.Members),
		Expenses:   slices.Clone(g.Expenses),
		PaidStatus: paid,
		CreatedAt:  g.CreatedAt,
	}
}

// GroupSummary is a light listing view of a group.
type GroupSummary struct {
	Name         string
	MemberCount  int
	ExpenseCount int
	CreatedAt    time.Time
}

// Summary returns the listing view of the group.
func (g *Group) Summary() GroupSummary {
	return GroupSummary{
		Name:         g.Name,
		MemberCount:  len(g.Members),
		ExpenseCount: len(g.Expenses),
		CreatedAt:    g.CreatedAt,
	}
}
