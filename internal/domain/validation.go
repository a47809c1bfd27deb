package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 500
	MaxExpenseAmount     = "1000000000000" // 1 trillion
	AmountScale          = 2
)

var maxExpenseAmount = decimal.RequireFromString(MaxExpenseAmount)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// NormalizeName trims surrounding whitespace from a group or member name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateGroupName validates a group name.
func ValidateGroupName(name string) error {
	return validateName(NormalizeName(name), ErrInvalidGroupName)
}

// ValidateMemberName validates a member name.
func ValidateMemberName(name string) error {
	return validateName(NormalizeName(name), ErrInvalidMemberName)
}

func validateName(name string, kind error) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", kind)
	}

	if strings.Contains(name, "/") {
		return fmt.Errorf("%w: name cannot contain '/'", kind)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", kind, MaxNameLength)
	}

	return nil
}

// ValidateDescription validates an expense description. Empty is allowed.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}
	return nil
}

// ValidateExpenseAmount validates a group expense amount. Zero is accepted.
func ValidateExpenseAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}

	if amount.GreaterThan(maxExpenseAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxExpenseAmount)
	}

	return nil
}

// ValidatePositiveAmount validates amounts that must be strictly positive
// (payments and personal expenses). The check applies to the amount rounded
// to two decimals, so 0.004 is rejected.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !QuantizeAmount(amount).IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	if amount.GreaterThan(maxExpenseAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxExpenseAmount)
	}

	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// QuantizeAmount rounds an amount to two decimal places.
func QuantizeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountScale)
}

// ToMinorUnits converts an amount to minor currency units, round(amount * 100).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(AmountScale).Round(0).IntPart()
}
