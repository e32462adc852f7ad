// internal/quantity/quantity.go
package quantity

import (
	"math"

	"gemvault/internal/domainerr"

	"github.com/shopspring/decimal"
)

// RoundingMode names how a value is brought to a fixed scale.
type RoundingMode int

const (
	// HalfUp rounds ties away from zero.
	HalfUp RoundingMode = iota
	// HalfEven rounds ties to the neighbour with an even last digit.
	HalfEven
	// Down truncates toward zero.
	Down
)

func (m RoundingMode) String() string {
	switch m {
	case HalfUp:
		return "half-up"
	case HalfEven:
		return "half-even"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

var two = decimal.NewFromInt(2)

// Quantity is an exact decimal pinned to a scale chosen by its owner.
//
// Invariants:
//   - value has at most scale fractional digits
//   - scale is never negative
type Quantity struct {
	value decimal.Decimal
	scale int32
}

// Of rounds raw to scale using mode. Negative scales are treated as zero.
func Of(raw decimal.Decimal, scale int32, mode RoundingMode) Quantity {
	if scale < 0 {
		scale = 0
	}
	return Quantity{value: Round(raw, scale, mode), scale: scale}
}

// Parse reads a decimal literal such as "17.31" and rounds it to scale.
func Parse(raw string, scale int32, mode RoundingMode) (Quantity, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Quantity{}, domainerr.InvalidArgument("malformed decimal %q", raw)
	}
	return Of(d, scale, mode), nil
}

// FromFloat converts f exactly as printed, rejecting NaN and infinities.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, domainerr.InvalidArgument("non-finite value %v", f)
	}
	return decimal.NewFromFloat(f), nil
}

// Round brings d to scale fractional digits.
func Round(d decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case HalfEven:
		return d.RoundBank(scale)
	case Down:
		return d.Truncate(scale)
	default:
		return d.Round(scale)
	}
}

// Divide computes a / b rounded once to scale. The quotient is never
// materialised at a fixed guard precision, so ties are decided exactly.
func Divide(a, b decimal.Decimal, scale int32, mode RoundingMode) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, domainerr.InvalidArgument("division by zero")
	}
	switch mode {
	case HalfUp:
		return a.DivRound(b, scale), nil
	case Down:
		q, _ := a.QuoRem(b, scale)
		return q, nil
	}

	q, r := a.QuoRem(b, scale)
	if r.IsZero() {
		return q, nil
	}
	ulp := decimal.New(1, -scale)
	c := r.Abs().Mul(two).Cmp(b.Abs().Mul(ulp))
	if c < 0 {
		return q, nil
	}
	if c == 0 && q.Shift(scale).Mod(two).IsZero() {
		return q, nil
	}
	if a.Sign()*b.Sign() < 0 {
		return q.Sub(ulp), nil
	}
	return q.Add(ulp), nil
}

func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) Scale() int32 { return q.scale }

// Rescale returns q rounded to a new scale.
func (q Quantity) Rescale(scale int32, mode RoundingMode) Quantity {
	return Of(q.value, scale, mode)
}

func (q Quantity) Add(o Quantity, scale int32, mode RoundingMode) Quantity {
	return Of(q.value.Add(o.value), scale, mode)
}

func (q Quantity) Sub(o Quantity, scale int32, mode RoundingMode) Quantity {
	return Of(q.value.Sub(o.value), scale, mode)
}

func (q Quantity) Mul(o Quantity, scale int32, mode RoundingMode) Quantity {
	return Of(q.value.Mul(o.value), scale, mode)
}

// Div divides q by o. Division by zero is an invalid argument.
func (q Quantity) Div(o Quantity, scale int32, mode RoundingMode) (Quantity, error) {
	v, err := Divide(q.value, o.value, scale, mode)
	if err != nil {
		return Quantity{}, err
	}
	if scale < 0 {
		scale = 0
	}
	return Quantity{value: v, scale: scale}, nil
}

// Cmp compares numeric values; scale does not participate.
func (q Quantity) Cmp(o Quantity) int { return q.value.Cmp(o.value) }

func (q Quantity) Equal(o Quantity) bool { return q.value.Equal(o.value) }

func (q Quantity) Sign() int { return q.value.Sign() }

func (q Quantity) IsPositive() bool { return q.value.IsPositive() }

func (q Quantity) IsZero() bool { return q.value.IsZero() }

// String renders q with exactly Scale fractional digits.
func (q Quantity) String() string { return q.value.StringFixed(q.scale) }
