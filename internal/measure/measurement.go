// Package measure models the physical measurements of a piece: ring sizes,
// worn lengths, earring and hair accessory dimensions, and weight. Every
// type keeps the amount as entered together with its unit, and compares
// through the canonical unit of its dimension.
package measure

import (
	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

// measurement is the shared core of every value object in this package.
//
// Invariants:
//   - amount is positive at the unit scale of its unit
//   - the canonical equivalent is positive at the dimension scale and
//     within the owner's bound
type measurement struct {
	dim    Dimension
	amount quantity.Quantity
	unit   Unit
}

func newMeasurement(what string, dim Dimension, v decimal.Decimal, u Unit, max decimal.Decimal) (measurement, error) {
	if !dim.Accepts(u) {
		return measurement{}, domainerr.InvalidArgument("%s cannot be given in %s", what, u)
	}
	amount := quantity.Of(v, dim.UnitScale(u), quantity.HalfUp)
	if !amount.IsPositive() {
		return measurement{}, domainerr.InvalidArgument("%s must be positive, got %s %s", what, v, u)
	}
	m := measurement{dim: dim, amount: amount, unit: u}
	canonical := m.canonical()
	if !canonical.IsPositive() {
		return measurement{}, domainerr.InvalidArgument("%s %s %s is below the smallest representable %s", what, v, u, dim.Canonical())
	}
	if canonical.GreaterThan(max) {
		return measurement{}, domainerr.OutOfRange("%s %s %s exceeds %s %s", what, m.display(), u, max, dim.Canonical())
	}
	return m, nil
}

func (m measurement) canonical() decimal.Decimal {
	v, _ := m.dim.ToCanonical(m.amount.Decimal(), m.unit)
	return v
}

func (m measurement) in(u Unit) (decimal.Decimal, error) {
	return m.dim.Convert(m.amount.Decimal(), m.unit, u)
}

func (m measurement) cmp(o measurement) int {
	return m.canonical().Cmp(o.canonical())
}

func (m measurement) isZero() bool { return m.unit == 0 }

func (m measurement) String() string {
	if m.isZero() {
		return ""
	}
	return m.display() + " " + m.unit.Code()
}

// display renders the amount at the dimension scale unless that would drop
// digits the amount actually carries.
func (m measurement) display() string {
	v := m.amount.Decimal()
	if rounded := v.Round(m.dim.Scale()); rounded.Equal(v) {
		return v.StringFixed(m.dim.Scale())
	}
	return v.String()
}

// bucket is one named range of a classification. The range is
// (previous upper, upper]; the first bucket also includes its lower end and
// an open bucket takes everything above the last bound.
type bucket struct {
	upper decimal.Decimal
	label string
	open  bool
}

type classification []bucket

func classes(pairs ...string) classification {
	c := make(classification, 0, (len(pairs)+1)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		c = append(c, bucket{upper: decimal.RequireFromString(pairs[i]), label: pairs[i+1]})
	}
	if len(pairs)%2 == 1 {
		c = append(c, bucket{label: pairs[len(pairs)-1], open: true})
	}
	return c
}

func (c classification) classify(v decimal.Decimal) (string, bool) {
	if !v.IsPositive() {
		return "", false
	}
	for _, b := range c {
		if b.open || v.LessThanOrEqual(b.upper) {
			return b.label, true
		}
	}
	return "", false
}

func (c classification) labels() []string {
	out := make([]string, len(c))
	for i, b := range c {
		out[i] = b.label
	}
	return out
}
