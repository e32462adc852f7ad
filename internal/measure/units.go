package measure

import (
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

// Kind separates physical quantities that can never convert into each other.
type Kind int

const (
	LengthKind Kind = iota + 1
	MassKind
)

// Unit is a physical unit with an exact factor to its kind's base
// (millimetre for length, gram for mass).
type Unit int

const (
	Millimeter Unit = iota + 1
	Centimeter
	Inch
	Gram
	Milligram
	Kilogram
	Ounce
	TroyOunce
	Carat
	Pennyweight
)

type unitInfo struct {
	code    string
	name    string
	kind    Kind
	perBase decimal.Decimal
	aliases []string
}

var units = map[Unit]unitInfo{
	Millimeter:  {"mm", "millimeter", LengthKind, decimal.NewFromInt(1), []string{"millimeters", "millimetre"}},
	Centimeter:  {"cm", "centimeter", LengthKind, decimal.NewFromInt(10), []string{"centimeters", "centimetre"}},
	Inch:        {"in", "inch", LengthKind, decimal.RequireFromString("25.4"), []string{"inches", "\""}},
	Gram:        {"g", "gram", MassKind, decimal.NewFromInt(1), []string{"grams"}},
	Milligram:   {"mg", "milligram", MassKind, decimal.RequireFromString("0.001"), []string{"milligrams"}},
	Kilogram:    {"kg", "kilogram", MassKind, decimal.NewFromInt(1000), []string{"kilograms"}},
	Ounce:       {"oz", "ounce", MassKind, decimal.RequireFromString("28.349523125"), []string{"ounces"}},
	TroyOunce:   {"ozt", "troy ounce", MassKind, decimal.RequireFromString("31.1034768"), []string{"troy", "troy_ounce", "troy-ounce"}},
	Carat:       {"ct", "carat", MassKind, decimal.RequireFromString("0.2"), []string{"carats"}},
	Pennyweight: {"dwt", "pennyweight", MassKind, decimal.RequireFromString("1.55517384"), []string{"pennyweights"}},
}

func (u Unit) Code() string { return units[u].code }

func (u Unit) Name() string { return units[u].name }

func (u Unit) Kind() Kind { return units[u].kind }

func (u Unit) String() string {
	if info, ok := units[u]; ok {
		return info.code
	}
	return "unit?"
}

// ParseUnit resolves a unit from its code, name or a common plural.
func ParseUnit(s string) (Unit, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for u, info := range units {
		if want == info.code || want == info.name {
			return u, nil
		}
		for _, a := range info.aliases {
			if want == a {
				return u, nil
			}
		}
	}
	return 0, domainerr.InvalidArgument("unknown unit %q", s)
}

// Dimension is a measured property with its own canonical unit, storage
// scale and the set of units it accepts.
type Dimension int

const (
	// Diameter is measured across a ring or an earring, canonically in millimetres.
	Diameter Dimension = iota + 1
	// DropLength is a worn length such as a chain, canonically in inches.
	DropLength
	// Mass of a finished piece or stone, canonically in grams.
	Mass
)

type dimensionInfo struct {
	name      string
	canonical Unit
	scale     int32
	accepts   []Unit
}

var dimensions = map[Dimension]dimensionInfo{
	Diameter:   {"diameter", Millimeter, 2, []Unit{Millimeter, Centimeter, Inch}},
	DropLength: {"drop length", Inch, 2, []Unit{Inch, Centimeter, Millimeter}},
	Mass:       {"mass", Gram, 4, []Unit{Gram, Milligram, Kilogram, Ounce, TroyOunce, Carat, Pennyweight}},
}

func (d Dimension) String() string { return dimensions[d].name }

func (d Dimension) Canonical() Unit { return dimensions[d].canonical }

// Scale is the number of fractional digits values of this dimension keep.
func (d Dimension) Scale() int32 { return dimensions[d].scale }

// Units lists the accepted units, canonical first.
func (d Dimension) Units() []Unit {
	return append([]Unit(nil), dimensions[d].accepts...)
}

func (d Dimension) Accepts(u Unit) bool {
	for _, a := range dimensions[d].accepts {
		if a == u {
			return true
		}
	}
	return false
}

// UnitScale is the number of fractional digits kept for a value given in u:
// enough that one step of u, seen in the dimension's finest unit, stays a
// tenth of a step at the dimension scale.
func (d Dimension) UnitScale(u Unit) int32 {
	finest := units[u].perBase
	for _, a := range dimensions[d].accepts {
		if units[a].perBase.LessThan(finest) {
			finest = units[a].perBase
		}
	}
	ratio := units[u].perBase.Div(finest).Ceil()
	return d.Scale() + int32(len(ratio.String())) + 1
}

// ToCanonical expresses v (in unit u) in the canonical unit, rounded half-up
// to the dimension scale.
func (d Dimension) ToCanonical(v decimal.Decimal, u Unit) (decimal.Decimal, error) {
	c, err := d.Convert(v, u, d.Canonical())
	if err != nil {
		return decimal.Decimal{}, err
	}
	return quantity.Round(c, d.Scale(), quantity.HalfUp), nil
}

// FromCanonical expresses a canonical value in unit u at the unit scale.
func (d Dimension) FromCanonical(v decimal.Decimal, u Unit) (decimal.Decimal, error) {
	return d.Convert(v, d.Canonical(), u)
}

// Convert re-expresses v from one accepted unit in another. Identical units
// return v untouched; otherwise the result is rounded half-up once, to the
// target's UnitScale, so converting there and back restores v at the
// dimension scale.
func (d Dimension) Convert(v decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !d.Accepts(from) || !d.Accepts(to) {
		return decimal.Decimal{}, domainerr.InvalidArgument("%s does not convert between %s and %s", d, from, to)
	}
	if from == to {
		return v, nil
	}
	return quantity.Divide(v.Mul(units[from].perBase), units[to].perBase, d.UnitScale(to), quantity.HalfUp)
}
