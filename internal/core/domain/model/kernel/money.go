package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places monetary amounts are kept at.
const moneyScale = 2

// Money is a value object representing a non-negative monetary amount.
// It is backed by an arbitrary-precision decimal so that totals, shipping
// splits, and refund amounts never suffer binary floating-point drift.
//
// The zero value represents zero money and is valid. Money is immutable;
// arithmetic methods return new values.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString parses a decimal string ("129.90") into Money.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a Money of zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with two decimal places, e.g. "15.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by a quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether the amount exceeds the other amount.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// SplitEvenly divides the amount into n shares of two decimal places.
// Each share is the amount divided by n rounded down; the rounding remainder
// is assigned to the first share, so the shares always sum exactly to the
// original amount.
func (m Money) SplitEvenly(n int) ([]Money, error) {
	if n <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"split count is invalid",
			fmt.Errorf("%d is not greater than 0", n),
		)
	}

	base := m.amount.Div(decimal.NewFromInt(int64(n))).RoundDown(moneyScale)
	remainder := m.amount.Sub(base.Mul(decimal.NewFromInt(int64(n))))

	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money{amount: base}
	}
	shares[0] = Money{amount: base.Add(remainder)}

	return shares, nil
}
