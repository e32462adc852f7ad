package measure

import (
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

var (
	maxEarringMM = decimal.NewFromInt(200)
	maxHairMM    = decimal.NewFromInt(500)

	earringClasses = classes(
		"6", "Petite",
		"12", "Small",
		"25", "Medium",
		"50", "Large",
		"Statement",
	)

	hairClasses = classes(
		"50", "Small",
		"100", "Medium",
		"200", "Large",
		"Oversized",
	)
)

// EarringSize is the largest visible dimension of an earring with an
// optional display label such as "7mm stud".
type EarringSize struct {
	m     measurement
	label string
}

func EarringSizeOf(v decimal.Decimal, u Unit, label string) (EarringSize, error) {
	m, err := newMeasurement("earring size", Diameter, v, u, maxEarringMM)
	if err != nil {
		return EarringSize{}, err
	}
	return EarringSize{m: m, label: strings.TrimSpace(label)}, nil
}

func EarringSizeFromMillimeters(mm decimal.Decimal, label string) (EarringSize, error) {
	return EarringSizeOf(mm, Millimeter, label)
}

func (e EarringSize) Millimeters() decimal.Decimal { return e.m.canonical() }

func (e EarringSize) Label() (string, bool) { return e.label, e.label != "" }

func (e EarringSize) WithLabel(label string) EarringSize {
	e.label = strings.TrimSpace(label)
	return e
}

func (e EarringSize) Amount() quantity.Quantity { return e.m.amount }

func (e EarringSize) Unit() Unit { return e.m.unit }

func (e EarringSize) In(u Unit) (decimal.Decimal, error) { return e.m.in(u) }

func (e EarringSize) Classify() (string, bool) { return earringClasses.classify(e.Millimeters()) }

func (e EarringSize) Cmp(o EarringSize) int { return e.m.cmp(o.m) }

// Equal compares the canonical size and the label.
func (e EarringSize) Equal(o EarringSize) bool {
	return e.Cmp(o) == 0 && e.label == o.label
}

func (e EarringSize) IsZero() bool { return e.m.isZero() }

func (e EarringSize) String() string {
	if e.label == "" {
		return e.m.String()
	}
	return e.m.String() + " (" + e.label + ")"
}

// HairAccessorySize describes a clip, comb or band by length in
// millimetres, with an optional width and display label.
//
// Invariants:
//   - length is positive and at most 500 mm
//   - width, when present, is positive and not longer than length
type HairAccessorySize struct {
	length measurement
	width  decimal.NullDecimal
	label  string
}

func NewHairAccessorySize(lengthMM decimal.Decimal, widthMM decimal.NullDecimal, label string) (HairAccessorySize, error) {
	length, err := newMeasurement("hair accessory length", Diameter, lengthMM, Millimeter, maxHairMM)
	if err != nil {
		return HairAccessorySize{}, err
	}
	h := HairAccessorySize{length: length, label: strings.TrimSpace(label)}
	if widthMM.Valid {
		w := quantity.Round(widthMM.Decimal, Diameter.Scale(), quantity.HalfUp)
		if !w.IsPositive() {
			return HairAccessorySize{}, domainerr.InvalidArgument("hair accessory width must be positive, got %s", widthMM.Decimal)
		}
		if w.GreaterThan(length.canonical()) {
			return HairAccessorySize{}, domainerr.InvalidArgument("hair accessory width %s exceeds length %s", w, length.canonical())
		}
		h.width = decimal.NewNullDecimal(w)
	}
	return h, nil
}

func (h HairAccessorySize) LengthMM() decimal.Decimal { return h.length.canonical() }

func (h HairAccessorySize) WidthMM() (decimal.Decimal, bool) { return h.width.Decimal, h.width.Valid }

func (h HairAccessorySize) Label() (string, bool) { return h.label, h.label != "" }

func (h HairAccessorySize) In(u Unit) (decimal.Decimal, error) { return h.length.in(u) }

func (h HairAccessorySize) Classify() (string, bool) { return hairClasses.classify(h.LengthMM()) }

func (h HairAccessorySize) Cmp(o HairAccessorySize) int { return h.length.cmp(o.length) }

func (h HairAccessorySize) Equal(o HairAccessorySize) bool {
	if h.Cmp(o) != 0 || h.label != o.label || h.width.Valid != o.width.Valid {
		return false
	}
	return !h.width.Valid || h.width.Decimal.Equal(o.width.Decimal)
}

func (h HairAccessorySize) IsZero() bool { return h.length.isZero() }

func (h HairAccessorySize) String() string {
	s := h.length.String()
	if h.width.Valid {
		s += " x " + h.width.Decimal.StringFixed(Diameter.Scale()) + " mm"
	}
	if h.label != "" {
		s += " (" + h.label + ")"
	}
	return s
}
