package kernel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact currency amount. Positive values are cash owed to the
// company, negative values are refunds of cash already collected.
//
// Money is immutable; arithmetic returns new values. The zero value is a valid
// zero amount. Persisted as numeric and serialized to JSON as a string so no
// float ever touches an amount.
//
// Example:
//
//	fee := kernel.MoneyFromInt(20000)
//	cod := kernel.MoneyFromInt(50000)
//	total := fee.Add(cod) // 70000
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps an arbitrary decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromInt builds an amount in whole currency units.
func MoneyFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

// MoneyFromString parses a decimal string such as "19999.67".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return Money{amount: d}, nil
}

// Decimal exposes the underlying value for calculations outside the domain.
func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) Add(other Money) Money { return Money{amount: m.amount.Add(other.amount)} }

func (m Money) Sub(other Money) Money { return Money{amount: m.amount.Sub(other.amount)} }

func (m Money) Neg() Money { return Money{amount: m.amount.Neg()} }

// Round rounds half away from zero to the given number of decimal places.
func (m Money) Round(places int32) Money { return Money{amount: m.amount.Round(places)} }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Equal compares by value, so 1.50 equals 1.5.
func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(other Money) int { return m.amount.Cmp(other.amount) }

func (m Money) String() string { return m.amount.String() }

// ValidateNonNegative fails when the amount is below zero.
func (m Money) ValidateNonNegative(paramName string) error {
	if m.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", m.amount))
	}
	return nil
}

// SumMoney adds up a list of amounts.
func SumMoney(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.amount)
	}
	return Money{amount: total}
}

// Value stores the amount as a numeric column.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}

// Scan reads a numeric column.
func (m *Money) Scan(value any) error {
	return m.amount.Scan(value)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON accepts either a quoted decimal or a bare JSON number.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.amount = d
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.amount = d
	return nil
}
