package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// GroupService defines the behavior needed by GroupHandler.
type GroupService interface {
	CreateGroup(ctx context.Context, store usecase.GroupStore, name string) (*domain.Group, error)
	ListGroups(ctx context.Context, store usecase.GroupStore) ([]domain.GroupSummary, error)
	GetGroup(ctx context.Context, store usecase.GroupStore, name string) (*domain.Group, error)
	AddMember(ctx context.Context, store usecase.GroupStore, group, member string) (*domain.Group, error)
	AddExpense(ctx context.Context, store usecase.GroupStore, input usecase.AddExpenseInput) (domain.Expense, error)
	ListExpenses(ctx context.Context, store usecase.GroupStore, group string) ([]domain.Expense, error)
	SetPaidStatus(ctx context.Context, store usecase.GroupStore, group, member string, paid bool) error
}

// GroupHandler handles group, member and expense requests.
type GroupHandler struct {
	groupUC GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupUC GroupService) *GroupHandler {
	return &GroupHandler{groupUC: groupUC}
}

// Create creates a new group.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groupUC.CreateGroup(r.Context(), session.Groups, req.Name)
	if err != nil {
		writeDomainError(w, r, "failed to create group", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GroupFromDomain(group))
}

// List lists the session's groups in creation order.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	groups, err := h.groupUC.ListGroups(r.Context(), session.Groups)
	if err != nil {
		writeDomainError(w, r, "failed to list groups", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupsFromDomain(groups))
}

// Get retrieves a group by name.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	group, err := h.groupUC.GetGroup(r.Context(), session.Groups, groupParam(r))
	if err != nil {
		writeDomainError(w, r, "failed to get group", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupFromDomain(group))
}

// AddMember appends a member to a group's roster.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groupUC.AddMember(r.Context(), session.Groups, groupParam(r), req.Name)
	if err != nil {
		writeDomainError(w, r, "failed to add member", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GroupFromDomain(group))
}

// AddExpense records a shared expense.
func (h *GroupHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.AddExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.groupUC.AddExpense(r.Context(), session.Groups, req.ToUseCaseInput(groupParam(r)))
	if err != nil {
		writeDomainError(w, r, "failed to add expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense, 0))
}

// ListExpenses lists a group's expenses in recording order.
func (h *GroupHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	group := groupParam(r)
	expenses, err := h.groupUC.ListExpenses(r.Context(), session.Groups, group)
	if err != nil {
		writeDomainError(w, r, "failed to list expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(group, expenses))
}

// SetPaidStatus sets or clears a member's paid flag.
func (h *GroupHandler) SetPaidStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.SetPaidStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Paid == nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "paid is required")
		return
	}

	group := groupParam(r)
	member := chi.URLParam(r, "member")
	if err := h.groupUC.SetPaidStatus(r.Context(), session.Groups, group, member, *req.Paid); err != nil {
		writeDomainError(w, r, "failed to set paid status", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaidStatusResponse{
		Group:  domain.NormalizeName(group),
		Member: domain.NormalizeName(member),
		Paid:   *req.Paid,
	})
}
