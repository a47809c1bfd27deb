package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/usecase"
)

// CreateGroupRequest represents a request to create a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest represents a request to add a member to a group.
type AddMemberRequest struct {
	Name string `json:"name"`
}

// AddExpenseRequest represents a request to record a shared expense.
type AddExpenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Payer        string          `json:"payer"`
	Participants []string        `json:"participants"`
}

// ToUseCaseInput converts to use case input.
func (r *AddExpenseRequest) ToUseCaseInput(group string) usecase.AddExpenseInput {
	return usecase.AddExpenseInput{
		Group:        group,
		Description:  r.Description,
		Amount:       r.Amount,
		Payer:        r.Payer,
		Participants: r.Participants,
	}
}

// SetPaidStatusRequest represents a request to set a member's paid flag.
type SetPaidStatusRequest struct {
	Paid *bool `json:"paid"`
}

// CreatePaymentRequest represents a request to open a payment order.
type CreatePaymentRequest struct {
	Payee  string          `json:"payee"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput(group string) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		Group:  group,
		Payee:  r.Payee,
		Amount: r.Amount,
	}
}

// AddPersonalExpenseRequest represents a request to log a personal expense.
// Date uses the YYYY-MM-DD layout.
type AddPersonalExpenseRequest struct {
	Date   string          `json:"date"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}
