package catalog

import (
	"slices"
	"strings"

	"gemvault/internal/composition"
	"gemvault/internal/domainerr"
	"gemvault/internal/measure"
	"gemvault/internal/money"
)

const skuFragmentLen = 8

// Variant is a purchasable configuration of a product. The concrete
// implementations are RingVariant, NecklaceVariant, EarringVariant,
// AnkletVariant and HairAccessoryVariant.
type Variant interface {
	ID() VariantID
	SKU() string
	Kind() Kind
	BasePrice() money.Money
	CurrentPrice() money.Money
	Status() Status
	Materials() []composition.MaterialComposition
	Gemstones() []composition.Gemstone
	CareInstructions() CareInstructions
	Style() StyleSet
	Weight() (measure.Weight, bool)
	Dimension() string
	// HasSameAttributes compares physical configuration only, ignoring
	// identity, SKU, prices and status.
	HasSameAttributes(other Variant) bool

	withStatus(target Status) (Variant, error)
}

type (
	RingVariant          = VariantOf[RingSpec]
	NecklaceVariant      = VariantOf[NecklaceSpec]
	EarringVariant       = VariantOf[EarringSpec]
	AnkletVariant        = VariantOf[AnkletSpec]
	HairAccessoryVariant = VariantOf[HairAccessorySpec]
)

// VariantOf is a variant of the category described by S. Every method that
// changes it returns a new, fully validated value and leaves the receiver
// untouched.
//
// Invariants:
//   - materials is never empty
//   - base and current price share a currency
//   - the spec is valid for its category
type VariantOf[S Spec[S]] struct {
	id           VariantID
	sku          string
	spec         S
	basePrice    money.Money
	currentPrice money.Money
	materials    []composition.MaterialComposition
	gemstones    []composition.Gemstone
	care         CareInstructions
	status       Status
}

// Create builds a draft variant with a fresh identity, no gemstones and the
// current price equal to the base price.
func Create[S Spec[S]](ids IDGenerator, spec S, basePrice money.Money, materials []composition.MaterialComposition, care CareInstructions) (VariantOf[S], error) {
	id := strings.TrimSpace(ids.NewID())
	if id == "" {
		return VariantOf[S]{}, domainerr.InvalidArgument("identifier generator returned a blank id")
	}
	if len(materials) == 0 {
		return VariantOf[S]{}, domainerr.InvalidArgument("a variant needs at least one material")
	}
	v := VariantOf[S]{
		id:           VariantID(id),
		sku:          makeSKU(spec.Kind(), id),
		spec:         spec,
		basePrice:    basePrice,
		currentPrice: basePrice,
		materials:    uniqueMaterials(materials),
		care:         care,
		status:       StatusDraft,
	}
	if err := v.validate(); err != nil {
		return VariantOf[S]{}, err
	}
	return v, nil
}

func makeSKU(kind Kind, id string) string {
	fragment := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(fragment) > skuFragmentLen {
		fragment = fragment[:skuFragmentLen]
	}
	return kind.SKUPrefix() + "-" + fragment
}

func uniqueMaterials(in []composition.MaterialComposition) []composition.MaterialComposition {
	out := make([]composition.MaterialComposition, 0, len(in))
	for _, m := range in {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func (v VariantOf[S]) validate() error {
	if err := v.spec.Validate(); err != nil {
		return err
	}
	if len(v.materials) == 0 {
		return domainerr.InvalidState("variant %s would have no materials", v.id)
	}
	for _, m := range v.materials {
		if m.Material().IsZero() {
			return domainerr.InvalidArgument("variant %s has an empty material composition", v.id)
		}
	}
	if !v.basePrice.SameCurrency(v.currentPrice) {
		return domainerr.CurrencyMismatch(v.basePrice.Currency().String(), v.currentPrice.Currency().String())
	}
	if v.care.IsZero() {
		return domainerr.InvalidArgument("care instructions are required")
	}
	return nil
}

// next validates a candidate state and hands it out only when valid.
func (v VariantOf[S]) next(candidate VariantOf[S]) (VariantOf[S], error) {
	if err := candidate.validate(); err != nil {
		return v, err
	}
	return candidate, nil
}

func (v VariantOf[S]) ID() VariantID { return v.id }

func (v VariantOf[S]) SKU() string { return v.sku }

func (v VariantOf[S]) Kind() Kind { return v.spec.Kind() }

func (v VariantOf[S]) Spec() S { return v.spec }

func (v VariantOf[S]) BasePrice() money.Money { return v.basePrice }

func (v VariantOf[S]) CurrentPrice() money.Money { return v.currentPrice }

func (v VariantOf[S]) Status() Status { return v.status }

func (v VariantOf[S]) Materials() []composition.MaterialComposition { return slices.Clone(v.materials) }

func (v VariantOf[S]) Gemstones() []composition.Gemstone { return slices.Clone(v.gemstones) }

func (v VariantOf[S]) CareInstructions() CareInstructions { return v.care }

func (v VariantOf[S]) Style() StyleSet { return v.spec.Style() }

func (v VariantOf[S]) Weight() (measure.Weight, bool) { return v.spec.Weight() }

func (v VariantOf[S]) Dimension() string { return v.spec.Dimension() }

// IsDiscounted reports whether the current price differs from the base price.
func (v VariantOf[S]) IsDiscounted() bool { return !v.currentPrice.Equal(v.basePrice) }

// ChangeSpec replaces size, style and weight in one step.
func (v VariantOf[S]) ChangeSpec(spec S) (VariantOf[S], error) {
	c := v
	c.spec = spec
	return v.next(c)
}

// ChangeBasePrice sets both prices, discarding any discount. The variant
// keeps the currency it was created with.
func (v VariantOf[S]) ChangeBasePrice(price money.Money) (VariantOf[S], error) {
	if !price.SameCurrency(v.basePrice) {
		return v, domainerr.CurrencyMismatch(v.basePrice.Currency().String(), price.Currency().String())
	}
	c := v
	c.basePrice = price
	c.currentPrice = price
	return v.next(c)
}

// ChangeCurrentPrice overrides the selling price; the base price stays.
func (v VariantOf[S]) ChangeCurrentPrice(price money.Money) (VariantOf[S], error) {
	c := v
	c.currentPrice = price
	return v.next(c)
}

// ApplyDiscount sets the current price to the base price less p.
func (v VariantOf[S]) ApplyDiscount(p money.Percentage) (VariantOf[S], error) {
	c := v
	c.currentPrice = v.basePrice.Discount(p)
	return v.next(c)
}

// RemoveDiscount restores the current price to the base price.
func (v VariantOf[S]) RemoveDiscount() (VariantOf[S], error) {
	c := v
	c.currentPrice = v.basePrice
	return v.next(c)
}

// AddMaterial adds m unless an equal composition is already present.
func (v VariantOf[S]) AddMaterial(m composition.MaterialComposition) (VariantOf[S], error) {
	if slices.Contains(v.materials, m) {
		return v, nil
	}
	c := v
	c.materials = append(slices.Clone(v.materials), m)
	return v.next(c)
}

// RemoveMaterial fails with an invalid state when m is the last material.
// Removing a material that is not present changes nothing.
func (v VariantOf[S]) RemoveMaterial(m composition.MaterialComposition) (VariantOf[S], error) {
	i := slices.Index(v.materials, m)
	if i < 0 {
		return v, nil
	}
	c := v
	c.materials = slices.Delete(slices.Clone(v.materials), i, i+1)
	return v.next(c)
}

func (v VariantOf[S]) AddGemstone(g composition.Gemstone) (VariantOf[S], error) {
	if v.gemstoneIndex(g) >= 0 {
		return v, nil
	}
	c := v
	c.gemstones = append(slices.Clone(v.gemstones), g)
	return v.next(c)
}

func (v VariantOf[S]) RemoveGemstone(g composition.Gemstone) (VariantOf[S], error) {
	i := v.gemstoneIndex(g)
	if i < 0 {
		return v, nil
	}
	c := v
	c.gemstones = slices.Delete(slices.Clone(v.gemstones), i, i+1)
	return v.next(c)
}

func (v VariantOf[S]) gemstoneIndex(g composition.Gemstone) int {
	return slices.IndexFunc(v.gemstones, g.Equal)
}

func (v VariantOf[S]) ChangeCareInstructions(care CareInstructions) (VariantOf[S], error) {
	c := v
	c.care = care
	return v.next(c)
}

// Activate puts the variant on sale. A discontinued variant cannot come back.
func (v VariantOf[S]) Activate() (VariantOf[S], error) {
	if v.status.IsTerminal() {
		return v, domainerr.InvalidState("cannot activate a discontinued variant")
	}
	c := v
	c.status = StatusActive
	return v.next(c)
}

// Deactivate takes the variant off sale. A discontinued variant stays discontinued.
func (v VariantOf[S]) Deactivate() (VariantOf[S], error) {
	if v.status.IsTerminal() {
		return v, nil
	}
	c := v
	c.status = StatusInactive
	return v.next(c)
}

// MarkDiscontinued retires the variant for good.
func (v VariantOf[S]) MarkDiscontinued() (VariantOf[S], error) {
	c := v
	c.status = StatusDiscontinued
	return v.next(c)
}

func (v VariantOf[S]) withStatus(target Status) (Variant, error) {
	var (
		next VariantOf[S]
		err  error
	)
	switch target {
	case StatusActive:
		next, err = v.Activate()
	case StatusInactive:
		next, err = v.Deactivate()
	case StatusDiscontinued:
		next, err = v.MarkDiscontinued()
	default:
		return v, domainerr.InvalidState("a variant cannot move to %s", target)
	}
	if err != nil {
		return v, err
	}
	return next, nil
}

// HasSameAttributes is false for a variant of another category.
func (v VariantOf[S]) HasSameAttributes(other Variant) bool {
	o, ok := other.(VariantOf[S])
	if !ok {
		return false
	}
	return v.spec.SameAs(o.spec) &&
		sameMaterials(v.materials, o.materials) &&
		sameGemstones(v.gemstones, o.gemstones) &&
		v.care == o.care
}

func sameMaterials(a, b []composition.MaterialComposition) bool {
	if len(a) != len(b) {
		return false
	}
	for _, m := range a {
		if !slices.Contains(b, m) {
			return false
		}
	}
	return true
}

func sameGemstones(a, b []composition.Gemstone) bool {
	if len(a) != len(b) {
		return false
	}
	for _, g := range a {
		if !slices.ContainsFunc(b, g.Equal) {
			return false
		}
	}
	return true
}
