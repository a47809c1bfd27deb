package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
)

// PaymentConfig configures PaymentUseCase.
type PaymentConfig struct {
	Currency string
	Timeout  time.Duration
}

// PaymentUseCase opens payment orders towards members who are owed money.
type PaymentUseCase struct {
	gateway  PaymentGateway
	idGen    IDGenerator
	cfg      PaymentConfig
	recorder Recorder
}

// NewPaymentUseCase creates a new PaymentUseCase. A nil gateway disables it.
func NewPaymentUseCase(gateway PaymentGateway, idGen IDGenerator, cfg PaymentConfig, recorder Recorder) (*PaymentUseCase, error) {
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if cfg.Currency == "" {
		cfg.Currency = DefaultPaymentCurrency
	}
	if err := domain.ValidateCurrency(cfg.Currency); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPaymentTimeout
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &PaymentUseCase{
		gateway:  gateway,
		idGen:    idGen,
		cfg:      cfg,
		recorder: recorder,
	}, nil
}

// CreateOrderInput represents input for opening a payment order.
type CreateOrderInput struct {
	Group  string
	Payee  string
	Amount decimal.Decimal
}

// PaymentOrderResult describes an opened order.
type PaymentOrderResult struct {
	OrderID     string
	Group       string
	Payee       string
	Amount      decimal.Decimal
	AmountMinor int64
	Currency    string
	Receipt     string
}

// Enabled reports whether a payment gateway is configured.
func (uc *PaymentUseCase) Enabled() bool {
	return uc.gateway != nil
}

// CreateOrder opens an order paying amount to payee. The payee must be
// owed money in the group. Paid status is not changed.
func (uc *PaymentUseCase) CreateOrder(ctx context.Context, store GroupStore, input CreateOrderInput) (*PaymentOrderResult, error) {
	if !uc.Enabled() {
		return nil, fmt.Errorf("%w: payment gateway", domain.ErrServiceDisabled)
	}

	amount := domain.QuantizeAmount(input.Amount)
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, err
	}

	g, err := store.Get(ctx, domain.NormalizeName(input.Group))
	if err != nil {
		return nil, err
	}

	sheet, err := settlement.ComputeBalances(g.Members, g.Expenses, g.PaidStatus)
	if err != nil {
		return nil, err
	}

	payee := domain.NormalizeName(input.Payee)
	if !settlement.IsEligiblePayee(sheet, payee) {
		return nil, fmt.Errorf("%w: %q in %q", domain.ErrPayeeNotEligible, payee, g.Name)
	}

	order := PaymentOrder{
		AmountMinor: domain.ToMinorUnits(amount),
		Currency:    uc.cfg.Currency,
		Receipt:     uc.idGen.Generate(),
		Capture:     true,
		Notes: map[string]string{
			"group": g.Name,
			"payee": payee,
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	logger := zerolog.Ctx(ctx)

	orderID, err := uc.gateway.CreateOrder(callCtx, order)
	if err != nil {
		uc.recorder.ExternalCallFailed("payment")
		logger.Error().Err(err).Str("group", g.Name).Str("payee", payee).Msg("payment order failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	uc.recorder.PaymentOrderCreated()
	logger.Info().
		Str("group", g.Name).
		Str("payee", payee).
		Str("order_id", orderID).
		Int64("amount_minor", order.AmountMinor).
		Msg("payment order created")

	return &PaymentOrderResult{
		OrderID:     orderID,
		Group:       g.Name,
		Payee:       payee,
		Amount:      amount,
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
		Receipt:     order.Receipt,
	}, nil
}
