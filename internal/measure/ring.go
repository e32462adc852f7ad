package measure

import (
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"
	"gemvault/internal/sizing"

	"github.com/shopspring/decimal"
)

var (
	maxRingDiameterMM = decimal.NewFromInt(40)

	// US sizes grow 0.83 mm per whole size from 11.5 mm at size 0.
	usSizeStepMM = decimal.RequireFromString("0.83")
	usSizeZeroMM = decimal.RequireFromString("11.5")

	usDisplayTolerance = decimal.RequireFromString("0.01")

	ringClasses = classes(
		"15.7", "Petite",
		"17.3", "Standard",
		"19.8", "Large",
		"Extra Large",
	)
)

// RingSize is the inner diameter of a ring.
type RingSize struct {
	m measurement
}

// RingSizeOf builds a ring size from a diameter in mm, cm or in.
func RingSizeOf(v decimal.Decimal, u Unit) (RingSize, error) {
	m, err := newMeasurement("ring diameter", Diameter, v, u, maxRingDiameterMM)
	if err != nil {
		return RingSize{}, err
	}
	return RingSize{m: m}, nil
}

// RingSizeFromDiameter builds a ring size from an ISO inner diameter in millimetres.
func RingSizeFromDiameter(mm decimal.Decimal) (RingSize, error) {
	return RingSizeOf(mm, Millimeter)
}

// RingSizeFromCircumference derives the diameter from an inner circumference in millimetres.
func RingSizeFromCircumference(mm decimal.Decimal) (RingSize, error) {
	if !mm.IsPositive() {
		return RingSize{}, domainerr.InvalidArgument("ring circumference must be positive, got %s", mm)
	}
	return RingSizeFromDiameter(sizing.DiameterFromCircumference(mm))
}

// RingSizeFromUS converts a numeric US/Canada size, quarter sizes included.
func RingSizeFromUS(size decimal.Decimal) (RingSize, error) {
	if size.IsNegative() {
		return RingSize{}, domainerr.InvalidArgument("US ring size must not be negative, got %s", size)
	}
	return RingSizeFromDiameter(size.Mul(usSizeStepMM).Add(usSizeZeroMM))
}

// RingSizeFromRegional looks the label up in a regional chart.
func RingSizeFromRegional(region sizing.Region, label string) (RingSize, error) {
	e, ok := sizing.Lookup(region, label)
	if !ok {
		return RingSize{}, domainerr.InvalidArgument("no %s ring size labelled %q", region, label)
	}
	return RingSizeFromDiameter(e.DiameterMM)
}

// DiameterMM is the canonical inner diameter.
func (r RingSize) DiameterMM() decimal.Decimal { return r.m.canonical() }

func (r RingSize) CircumferenceMM() decimal.Decimal {
	return sizing.CircumferenceMM(r.DiameterMM())
}

// USSize is the numeric US size on the continuous scale, at two decimals.
func (r RingSize) USSize() decimal.Decimal {
	v, _ := quantity.Divide(r.DiameterMM().Sub(usSizeZeroMM), usSizeStepMM, 2, quantity.HalfUp)
	return v
}

// USDisplay names the US chart label this size corresponds to, when the
// numeric US size is within 0.01 of a labelled size.
func (r RingSize) USDisplay() (string, bool) {
	us := r.USSize()
	for _, e := range sizing.Table(sizing.US) {
		n, ok := usLabelSize(e.Label)
		if ok && us.Sub(n).Abs().LessThanOrEqual(usDisplayTolerance) {
			return e.Label, true
		}
	}
	return "", false
}

// usLabelSize reads a US label such as "7" or "7 1/2" as a number.
func usLabelSize(label string) (decimal.Decimal, bool) {
	whole, frac, _ := strings.Cut(label, " ")
	n, err := decimal.NewFromString(whole)
	if err != nil {
		return decimal.Decimal{}, false
	}
	switch frac {
	case "":
	case "1/4":
		n = n.Add(decimal.RequireFromString("0.25"))
	case "1/2":
		n = n.Add(decimal.RequireFromString("0.5"))
	case "3/4":
		n = n.Add(decimal.RequireFromString("0.75"))
	default:
		return decimal.Decimal{}, false
	}
	return n, true
}

// Nearest returns the closest labelled size of a regional chart.
func (r RingSize) Nearest(region sizing.Region) (sizing.Entry, bool) {
	return sizing.Nearest(region, r.DiameterMM())
}

func (r RingSize) Amount() quantity.Quantity { return r.m.amount }

func (r RingSize) Unit() Unit { return r.m.unit }

// In expresses the diameter in another length unit.
func (r RingSize) In(u Unit) (decimal.Decimal, error) { return r.m.in(u) }

// To re-expresses the size in another unit.
func (r RingSize) To(u Unit) (RingSize, error) {
	v, err := r.In(u)
	if err != nil {
		return RingSize{}, err
	}
	return RingSizeOf(v, u)
}

func (r RingSize) Classify() (string, bool) { return ringClasses.classify(r.DiameterMM()) }

func (r RingSize) Cmp(o RingSize) int { return r.m.cmp(o.m) }

func (r RingSize) Equal(o RingSize) bool { return r.Cmp(o) == 0 }

func (r RingSize) IsZero() bool { return r.m.isZero() }

func (r RingSize) String() string { return r.m.String() }
