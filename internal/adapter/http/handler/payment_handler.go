package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CreateOrder(ctx context.Context, store usecase.GroupStore, input usecase.CreateOrderInput) (*usecase.PaymentOrderResult, error)
}

// PaymentHandler opens payment orders.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create opens a payment order towards an eligible payee.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.paymentUC.CreateOrder(r.Context(), session.Groups, req.ToUseCaseInput(groupParam(r)))
	if err != nil {
		writeDomainError(w, r, "failed to create payment order", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentOrderFromUseCase(order))
}
