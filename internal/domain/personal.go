package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for personal expenses.
const DateLayout = "2006-01-02"

// PersonalExpense is one dated entry of a personal monthly spending log.
type PersonalExpense struct {
	ID     string
	Date   time.Time
	Item   string
	Amount decimal.Decimal
}

// NewPersonalExpense validates and normalizes a personal expense. The date
// is truncated to a UTC calendar day.
func NewPersonalExpense(id string, date time.Time, item string, amount decimal.Decimal) (PersonalExpense, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return PersonalExpense{}, fmt.Errorf("%w: item cannot be empty", ErrInvalidDescription)
	}
	if err := ValidateDescription(item); err != nil {
		return PersonalExpense{}, err
	}

	if date.IsZero() {
		return PersonalExpense{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	amount = QuantizeAmount(amount)
	if err := ValidatePositiveAmount(amount); err != nil {
		return PersonalExpense{}, err
	}

	return PersonalExpense{
		ID:     id,
		Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Item:   item,
		Amount: amount,
	}, nil
}

// InMonth reports whether the expense is dated in the given month.
func (e PersonalExpense) InMonth(year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}

// ValidateMonth validates a year/month pair.
func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return t, nil
}
