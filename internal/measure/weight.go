package measure

import (
	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

var (
	maxWeightGrams = decimal.NewFromInt(100_000)

	weightClasses = classes(
		"5", "Delicate",
		"20", "Standard",
		"50", "Substantial",
		"Heavy",
	)
)

// Weight is the mass of a finished piece or a stone.
type Weight struct {
	m measurement
}

func WeightOf(v decimal.Decimal, u Unit) (Weight, error) {
	m, err := newMeasurement("weight", Mass, v, u, maxWeightGrams)
	if err != nil {
		return Weight{}, err
	}
	return Weight{m: m}, nil
}

func WeightFromGrams(g decimal.Decimal) (Weight, error) { return WeightOf(g, Gram) }

func WeightFromOunces(oz decimal.Decimal) (Weight, error) { return WeightOf(oz, Ounce) }

func WeightFromTroyOunces(ozt decimal.Decimal) (Weight, error) { return WeightOf(ozt, TroyOunce) }

func WeightFromCarats(ct decimal.Decimal) (Weight, error) { return WeightOf(ct, Carat) }

func WeightFromPennyweights(dwt decimal.Decimal) (Weight, error) { return WeightOf(dwt, Pennyweight) }

// Grams is the canonical weight at four decimals.
func (w Weight) Grams() decimal.Decimal { return w.m.canonical() }

func (w Weight) Amount() quantity.Quantity { return w.m.amount }

func (w Weight) Unit() Unit { return w.m.unit }

func (w Weight) In(u Unit) (decimal.Decimal, error) { return w.m.in(u) }

func (w Weight) To(u Unit) (Weight, error) {
	v, err := w.In(u)
	if err != nil {
		return Weight{}, err
	}
	return WeightOf(v, u)
}

// Add sums two weights; the result is expressed in grams.
func (w Weight) Add(o Weight) (Weight, error) {
	return WeightFromGrams(w.Grams().Add(o.Grams()))
}

// Sub subtracts o; a result below zero is an invalid state and exactly zero
// is not a weight.
func (w Weight) Sub(o Weight) (Weight, error) {
	diff := w.Grams().Sub(o.Grams())
	if diff.IsNegative() {
		return Weight{}, domainerr.InvalidState("subtracting %s from %s leaves a negative weight", o, w)
	}
	return WeightFromGrams(diff)
}

func (w Weight) Classify() (string, bool) { return weightClasses.classify(w.Grams()) }

func (w Weight) Cmp(o Weight) int { return w.m.cmp(o.m) }

func (w Weight) Equal(o Weight) bool { return w.Cmp(o) == 0 }

func (w Weight) IsZero() bool { return w.m.isZero() }

func (w Weight) String() string { return w.m.String() }
