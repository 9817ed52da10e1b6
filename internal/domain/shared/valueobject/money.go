package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code
type Currency string

// USD is the only currency the system trades in today. Prices are stored
// as bare decimals; Money exists so amount arithmetic and sign checks
// stay in one place.
const USD Currency = "USD"

// Money is an immutable monetary amount. Operations return new values.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoneyUSD wraps a decimal amount as USD money
func NewMoneyUSD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// NewMoneyUSDFromFloat wraps a float amount as USD money
func NewMoneyUSDFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount), currency: USD}
}

// ZeroUSD returns zero USD
func ZeroUSD() Money {
	return Money{amount: decimal.Zero, currency: USD}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// MultiplyByInt scales the amount by an integer factor, e.g. a line
// quantity times a unit price.
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(factor)),
		currency: m.currency,
	}
}

// String returns a human-readable representation, e.g. "USD 12.50"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}
