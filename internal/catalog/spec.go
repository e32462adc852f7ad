package catalog

import (
	"gemvault/internal/domainerr"
	"gemvault/internal/measure"
)

// Spec is the category-specific part of a variant: the dimension it is
// sized by, its style tags and, for some categories, a weight.
type Spec[S any] interface {
	Kind() Kind
	Style() StyleSet
	Weight() (measure.Weight, bool)
	// Dimension renders the sizing attribute for display.
	Dimension() string
	Validate() error
	// SameAs compares every physical attribute of two specs.
	SameAs(other S) bool
}

func validateStyle(kind Kind, style StyleSet) error {
	if style.Kind() != kind {
		return domainerr.InvalidArgument("%s variant cannot use %q styles", kind, style.Kind())
	}
	return nil
}

func sameWeight(a, b measure.Weight) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() == b.IsZero()
	}
	return a.Equal(b)
}

// RingSpec describes a ring. Mass is optional.
type RingSpec struct {
	Size   measure.RingSize
	Styles StyleSet
	Mass   measure.Weight
}

func (RingSpec) Kind() Kind { return KindRing }

func (s RingSpec) Style() StyleSet { return s.Styles }

func (s RingSpec) Weight() (measure.Weight, bool) { return s.Mass, !s.Mass.IsZero() }

func (s RingSpec) Dimension() string { return s.Size.String() }

func (s RingSpec) Validate() error {
	if s.Size.IsZero() {
		return domainerr.InvalidArgument("ring size is required")
	}
	return validateStyle(KindRing, s.Styles)
}

func (s RingSpec) SameAs(o RingSpec) bool {
	return s.Size.Equal(o.Size) && s.Styles.Equal(o.Styles) && sameWeight(s.Mass, o.Mass)
}

// NecklaceSpec describes a necklace. Mass is optional.
type NecklaceSpec struct {
	Length measure.NecklaceLength
	Styles StyleSet
	Mass   measure.Weight
}

func (NecklaceSpec) Kind() Kind { return KindNecklace }

func (s NecklaceSpec) Style() StyleSet { return s.Styles }

func (s NecklaceSpec) Weight() (measure.Weight, bool) { return s.Mass, !s.Mass.IsZero() }

func (s NecklaceSpec) Dimension() string { return s.Length.String() }

func (s NecklaceSpec) Validate() error {
	if s.Length.IsZero() {
		return domainerr.InvalidArgument("necklace length is required")
	}
	return validateStyle(KindNecklace, s.Styles)
}

func (s NecklaceSpec) SameAs(o NecklaceSpec) bool {
	return s.Length.Equal(o.Length) && s.Styles.Equal(o.Styles) && sameWeight(s.Mass, o.Mass)
}

// AnkletSpec describes an anklet. Mass is optional.
type AnkletSpec struct {
	Length measure.AnkletLength
	Styles StyleSet
	Mass   measure.Weight
}

func (AnkletSpec) Kind() Kind { return KindAnklet }

func (s AnkletSpec) Style() StyleSet { return s.Styles }

func (s AnkletSpec) Weight() (measure.Weight, bool) { return s.Mass, !s.Mass.IsZero() }

func (s AnkletSpec) Dimension() string { return s.Length.String() }

func (s AnkletSpec) Validate() error {
	if s.Length.IsZero() {
		return domainerr.InvalidArgument("anklet length is required")
	}
	return validateStyle(KindAnklet, s.Styles)
}

func (s AnkletSpec) SameAs(o AnkletSpec) bool {
	return s.Length.Equal(o.Length) && s.Styles.Equal(o.Styles) && sameWeight(s.Mass, o.Mass)
}

// EarringSpec describes a pair of earrings. Earrings carry no weight.
type EarringSpec struct {
	Size   measure.EarringSize
	Styles StyleSet
}

func (EarringSpec) Kind() Kind { return KindEarring }

func (s EarringSpec) Style() StyleSet { return s.Styles }

func (EarringSpec) Weight() (measure.Weight, bool) { return measure.Weight{}, false }

func (s EarringSpec) Dimension() string { return s.Size.String() }

func (s EarringSpec) Validate() error {
	if s.Size.IsZero() {
		return domainerr.InvalidArgument("earring size is required")
	}
	return validateStyle(KindEarring, s.Styles)
}

func (s EarringSpec) SameAs(o EarringSpec) bool {
	return s.Size.Equal(o.Size) && s.Styles.Equal(o.Styles)
}

// HairAccessorySpec describes a clip, comb, tiara or band.
type HairAccessorySpec struct {
	Size   measure.HairAccessorySize
	Styles StyleSet
}

func (HairAccessorySpec) Kind() Kind { return KindHairAccessory }

func (s HairAccessorySpec) Style() StyleSet { return s.Styles }

func (HairAccessorySpec) Weight() (measure.Weight, bool) { return measure.Weight{}, false }

func (s HairAccessorySpec) Dimension() string { return s.Size.String() }

func (s HairAccessorySpec) Validate() error {
	if s.Size.IsZero() {
		return domainerr.InvalidArgument("hair accessory size is required")
	}
	return validateStyle(KindHairAccessory, s.Styles)
}

func (s HairAccessorySpec) SameAs(o HairAccessorySpec) bool {
	return s.Size.Equal(o.Size) && s.Styles.Equal(o.Styles)
}
