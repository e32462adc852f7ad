package money

import (
	"gemvault/internal/domainerr"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage is a fraction between 0 and 1 inclusive.
type Percentage struct {
	fraction decimal.Decimal
}

func NewPercentage(fraction decimal.Decimal) (Percentage, error) {
	if fraction.IsNegative() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return Percentage{}, domainerr.InvalidArgument("percentage must be between 0 and 1, got %s", fraction)
	}
	return Percentage{fraction: fraction}, nil
}

// PercentOf reads a value written in percent, so 15 means 0.15.
func PercentOf(percent decimal.Decimal) (Percentage, error) {
	return NewPercentage(percent.Div(hundred))
}

func (p Percentage) Fraction() decimal.Decimal { return p.fraction }

func (p Percentage) Percent() decimal.Decimal { return p.fraction.Mul(hundred) }

func (p Percentage) String() string { return p.Percent().String() + "%" }
