// Package money holds non-negative amounts tagged with an ISO 4217
// currency. Arithmetic never crosses currencies.
package money

import (
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount in the minor-unit scale of its currency.
//
// Invariants:
//   - amount is never negative
//   - amount has at most the currency's standard number of decimals
type Money struct {
	amount   decimal.Decimal
	currency currency.Unit
}

// New rounds amount half-up to the currency's standard scale.
func New(amount decimal.Decimal, cur currency.Unit) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domainerr.InvalidArgument("amount must not be negative, got %s %s", amount, cur)
	}
	return Money{amount: quantity.Round(amount, scaleOf(cur), quantity.HalfUp), currency: cur}, nil
}

// Parse reads an amount such as "1299.99" in the currency with the given ISO code.
func Parse(amount, code string) (Money, error) {
	cur, err := ParseCurrency(code)
	if err != nil {
		return Money{}, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, domainerr.InvalidArgument("malformed amount %q", amount)
	}
	return New(d, cur)
}

// MustParse is Parse for literals known to be valid.
func MustParse(amount, code string) Money {
	m, err := Parse(amount, code)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseCurrency resolves a three-letter ISO 4217 code.
func ParseCurrency(code string) (currency.Unit, error) {
	cur, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, domainerr.InvalidArgument("unknown currency %q", code)
	}
	return cur, nil
}

// Zero is a zero amount in cur.
func Zero(cur currency.Unit) Money {
	return Money{amount: decimal.Zero, currency: cur}
}

func scaleOf(cur currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(cur)
	return int32(scale)
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() currency.Unit { return m.currency }

func (m Money) SameCurrency(o Money) bool { return m.currency == o.currency }

func (m Money) Add(o Money) (Money, error) {
	if !m.SameCurrency(o) {
		return Money{}, domainerr.CurrencyMismatch(m.currency.String(), o.currency.String())
	}
	return New(m.amount.Add(o.amount), m.currency)
}

// Sub fails with an invalid state when o is larger than m.
func (m Money) Sub(o Money) (Money, error) {
	if !m.SameCurrency(o) {
		return Money{}, domainerr.CurrencyMismatch(m.currency.String(), o.currency.String())
	}
	diff := m.amount.Sub(o.amount)
	if diff.IsNegative() {
		return Money{}, domainerr.InvalidState("%s minus %s is negative", m, o)
	}
	return New(diff, m.currency)
}

// Mul scales the amount by a non-negative factor, rounding half-up.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domainerr.InvalidArgument("multiplier must not be negative, got %s", factor)
	}
	return New(m.amount.Mul(factor), m.currency)
}

// Discount takes p off the amount.
func (m Money) Discount(p Percentage) Money {
	discounted, _ := m.Mul(decimal.NewFromInt(1).Sub(p.fraction))
	return discounted
}

// Cmp orders two amounts of the same currency.
func (m Money) Cmp(o Money) (int, error) {
	if !m.SameCurrency(o) {
		return 0, domainerr.CurrencyMismatch(m.currency.String(), o.currency.String())
	}
	return m.amount.Cmp(o.amount), nil
}

func (m Money) Equal(o Money) bool {
	return m.SameCurrency(o) && m.amount.Equal(o.amount)
}

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) String() string {
	return m.currency.String() + " " + m.amount.StringFixed(scaleOf(m.currency))
}
