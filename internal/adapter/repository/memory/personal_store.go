package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/iho/gosplit/internal/domain"
)

// PersonalStore implements usecase.PersonalStore for one session.
type PersonalStore struct {
	mu       sync.Mutex
	expenses []domain.PersonalExpense
}

// NewPersonalStore creates an empty PersonalStore.
func NewPersonalStore() *PersonalStore {
	return &PersonalStore{}
}

// Add appends an expense.
func (s *PersonalStore) Add(ctx context.Context, expense domain.PersonalExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = append(s.expenses, expense)

	return nil
}

// List returns all expenses in insertion order.
func (s *PersonalStore) List(ctx context.Context) ([]domain.PersonalExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.expenses), nil
}
