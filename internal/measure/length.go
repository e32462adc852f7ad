package measure

import (
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

var (
	maxNecklaceInches = decimal.NewFromInt(120)
	maxAnkletInches   = decimal.NewFromInt(30)

	necklaceClasses = classes(
		"14", "Collar",
		"16", "Choker",
		"18", "Princess",
		"20", "Matinee",
		"34", "Opera",
		"Rope/Lariat",
	)

	ankletClasses = classes(
		"9", "Petite",
		"10", "Standard",
		"11", "Large",
		"Extra Large",
	)
)

// NecklaceLength is the worn length of a necklace chain.
type NecklaceLength struct {
	m measurement
}

func NecklaceLengthOf(v decimal.Decimal, u Unit) (NecklaceLength, error) {
	m, err := newMeasurement("necklace length", DropLength, v, u, maxNecklaceInches)
	if err != nil {
		return NecklaceLength{}, err
	}
	return NecklaceLength{m: m}, nil
}

func NecklaceLengthFromInches(in decimal.Decimal) (NecklaceLength, error) {
	return NecklaceLengthOf(in, Inch)
}

func NecklaceLengthFromCentimeters(cm decimal.Decimal) (NecklaceLength, error) {
	return NecklaceLengthOf(cm, Centimeter)
}

// Inches is the canonical length.
func (n NecklaceLength) Inches() decimal.Decimal { return n.m.canonical() }

func (n NecklaceLength) Amount() quantity.Quantity { return n.m.amount }

func (n NecklaceLength) Unit() Unit { return n.m.unit }

func (n NecklaceLength) In(u Unit) (decimal.Decimal, error) { return n.m.in(u) }

func (n NecklaceLength) To(u Unit) (NecklaceLength, error) {
	v, err := n.In(u)
	if err != nil {
		return NecklaceLength{}, err
	}
	return NecklaceLengthOf(v, u)
}

// Classify names the traditional necklace length, e.g. "Princess" for 17-18 in.
func (n NecklaceLength) Classify() (string, bool) { return necklaceClasses.classify(n.Inches()) }

func (n NecklaceLength) Cmp(o NecklaceLength) int { return n.m.cmp(o.m) }

func (n NecklaceLength) Equal(o NecklaceLength) bool { return n.Cmp(o) == 0 }

func (n NecklaceLength) IsZero() bool { return n.m.isZero() }

func (n NecklaceLength) String() string { return n.m.String() }

// AnkletLength is the circumference an anklet is made for.
type AnkletLength struct {
	m measurement
}

func AnkletLengthOf(v decimal.Decimal, u Unit) (AnkletLength, error) {
	m, err := newMeasurement("anklet length", DropLength, v, u, maxAnkletInches)
	if err != nil {
		return AnkletLength{}, err
	}
	return AnkletLength{m: m}, nil
}

func AnkletLengthFromInches(in decimal.Decimal) (AnkletLength, error) {
	return AnkletLengthOf(in, Inch)
}

func AnkletLengthFromCentimeters(cm decimal.Decimal) (AnkletLength, error) {
	return AnkletLengthOf(cm, Centimeter)
}

func (a AnkletLength) Inches() decimal.Decimal { return a.m.canonical() }

func (a AnkletLength) Amount() quantity.Quantity { return a.m.amount }

func (a AnkletLength) Unit() Unit { return a.m.unit }

func (a AnkletLength) In(u Unit) (decimal.Decimal, error) { return a.m.in(u) }

func (a AnkletLength) To(u Unit) (AnkletLength, error) {
	v, err := a.In(u)
	if err != nil {
		return AnkletLength{}, err
	}
	return AnkletLengthOf(v, u)
}

func (a AnkletLength) Classify() (string, bool) { return ankletClasses.classify(a.Inches()) }

func (a AnkletLength) Cmp(o AnkletLength) int { return a.m.cmp(o.m) }

func (a AnkletLength) Equal(o AnkletLength) bool { return a.Cmp(o) == 0 }

func (a AnkletLength) IsZero() bool { return a.m.isZero() }

func (a AnkletLength) String() string { return a.m.String() }
