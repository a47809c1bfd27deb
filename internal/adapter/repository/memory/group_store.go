// Package memory holds session state in process memory. Nothing is
// persisted; a session's data disappears when the session is discarded.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/gosplit/internal/domain"
)

// GroupStore implements usecase.GroupStore for one session.
type GroupStore struct {
	mu     sync.Mutex
	groups map[string]*domain.Group
	order  []string
}

// NewGroupStore creates an empty GroupStore.
func NewGroupStore() *GroupStore {
	return &GroupStore{
		groups: make(map[string]*domain.Group),
	}
}

// Create adds a new group.
func (s *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.Name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateGroup, group.Name)
	}

	s.groups[group.Name] = group.Clone()
	s.order = append(s.order, group.Name)

	return nil
}

// Get returns a snapshot of a group.
func (s *GroupStore) Get(ctx context.Context, name string) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGroupNotFound, name)
	}

	return g.Clone(), nil
}

// List returns snapshots of all groups in creation order.
func (s *GroupStore) List(ctx context.Context) ([]*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*domain.Group, 0, len(s.order))
	for _, name := range s.order {
		groups = append(groups, s.groups[name].Clone())
	}

	return groups, nil
}

// Update runs fn on a copy of the group and swaps it in when fn succeeds.
// The store lock is held for the duration of fn.
func (s *GroupStore) Update(ctx context.Context, name string, fn func(*domain.Group) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, name)
	}

	working := g.Clone()
	if err := fn(working); err != nil {
		return err
	}

	s.groups[name] = working

	return nil
}
