// Package composition describes what a piece is made of: gemstones,
// materials and the role each material plays in the piece.
package composition

import (
	"fmt"
	"regexp"
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/measure"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

const (
	caratScale           int32 = 4
	maxTypeDescriptionLen      = 1000
)

var gemstoneNamePattern = regexp.MustCompile(`^[\p{L}0-9'\- ]+$`)

// GemstoneType names a kind of stone. Names compare case-insensitively.
type GemstoneType struct {
	name        string
	description string
}

var (
	Diamond    = mustGemstoneType("Diamond")
	Sapphire   = mustGemstoneType("Sapphire")
	Ruby       = mustGemstoneType("Ruby")
	Emerald    = mustGemstoneType("Emerald")
	Moonstone  = mustGemstoneType("Moonstone")
	Opal       = mustGemstoneType("Opal")
	Topaz      = mustGemstoneType("Topaz")
	Garnet     = mustGemstoneType("Garnet")
	Peridot    = mustGemstoneType("Peridot")
	Aquamarine = mustGemstoneType("Aquamarine")
	OtherStone = mustGemstoneType("Other")
)

// KnownGemstoneTypes lists the canonical types in display order.
func KnownGemstoneTypes() []GemstoneType {
	return []GemstoneType{Diamond, Sapphire, Ruby, Emerald, Moonstone, Opal, Topaz, Garnet, Peridot, Aquamarine, OtherStone}
}

// NewGemstoneType validates a type name such as "Tsavorite" or "Cat's Eye".
func NewGemstoneType(name, description string) (GemstoneType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GemstoneType{}, domainerr.InvalidArgument("gemstone type name is required")
	}
	if !gemstoneNamePattern.MatchString(name) {
		return GemstoneType{}, domainerr.InvalidArgument("gemstone type name %q has invalid characters", name)
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > maxTypeDescriptionLen {
		return GemstoneType{}, domainerr.InvalidArgument("gemstone type description exceeds %d characters", maxTypeDescriptionLen)
	}
	return GemstoneType{name: name, description: description}, nil
}

// ParseGemstoneType returns a canonical type when name matches one, and a
// custom type otherwise.
func ParseGemstoneType(name string) (GemstoneType, error) {
	for _, t := range KnownGemstoneTypes() {
		if strings.EqualFold(t.name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return NewGemstoneType(name, "")
}

func mustGemstoneType(name string) GemstoneType {
	t, err := NewGemstoneType(name, "")
	if err != nil {
		panic(err)
	}
	return t
}

func (t GemstoneType) Name() string { return t.name }

func (t GemstoneType) Description() string { return t.description }

func (t GemstoneType) Equal(o GemstoneType) bool { return strings.EqualFold(t.name, o.name) }

func (t GemstoneType) IsZero() bool { return t.name == "" }

func (t GemstoneType) String() string { return t.name }

// Gemstone is a stone set in a piece.
//
// Invariants:
//   - type is always present
//   - grade is trimmed, and blank means absent
//   - carat, when present, is positive with at most four decimals
type Gemstone struct {
	kind      GemstoneType
	grade     string
	carat     decimal.NullDecimal
	certified bool
	labGrown  bool
}

// NewGemstone builds a stone. Pass decimal.NullDecimal{} for an unknown carat weight.
func NewGemstone(kind GemstoneType, grade string, carat decimal.NullDecimal, certified, labGrown bool) (Gemstone, error) {
	if kind.IsZero() {
		return Gemstone{}, domainerr.InvalidArgument("gemstone type is required")
	}
	g := Gemstone{kind: kind, grade: strings.TrimSpace(grade), certified: certified, labGrown: labGrown}
	if carat.Valid {
		c := quantity.Round(carat.Decimal, caratScale, quantity.HalfUp)
		if !c.IsPositive() {
			return Gemstone{}, domainerr.InvalidArgument("carat must be positive, got %s", carat.Decimal)
		}
		if _, err := measure.WeightFromCarats(c); err != nil {
			return Gemstone{}, err
		}
		g.carat = decimal.NewNullDecimal(c)
	}
	return g, nil
}

// MustGemstone is NewGemstone for fixtures known to be valid.
func MustGemstone(kind GemstoneType, grade string, carat decimal.NullDecimal, certified, labGrown bool) Gemstone {
	g, err := NewGemstone(kind, grade, carat, certified, labGrown)
	if err != nil {
		panic(err)
	}
	return g
}

// Carats is a convenience for the optional carat argument of NewGemstone.
func Carats(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func (g Gemstone) Type() GemstoneType { return g.kind }

func (g Gemstone) Grade() (string, bool) { return g.grade, g.grade != "" }

func (g Gemstone) Carat() (decimal.Decimal, bool) { return g.carat.Decimal, g.carat.Valid }

// CaratWeight expresses the carat weight as a Weight.
func (g Gemstone) CaratWeight() (measure.Weight, bool) {
	if !g.carat.Valid {
		return measure.Weight{}, false
	}
	w, err := measure.WeightFromCarats(g.carat.Decimal)
	return w, err == nil
}

func (g Gemstone) Certified() bool { return g.certified }

func (g Gemstone) LabGrown() bool { return g.labGrown }

func (g Gemstone) WithGrade(grade string) Gemstone {
	g.grade = strings.TrimSpace(grade)
	return g
}

func (g Gemstone) WithoutGrade() Gemstone {
	g.grade = ""
	return g
}

func (g Gemstone) WithCarat(carat decimal.Decimal) (Gemstone, error) {
	return NewGemstone(g.kind, g.grade, decimal.NewNullDecimal(carat), g.certified, g.labGrown)
}

func (g Gemstone) WithoutCarat() Gemstone {
	g.carat = decimal.NullDecimal{}
	return g
}

func (g Gemstone) WithCertificate(certified bool) Gemstone {
	g.certified = certified
	return g
}

func (g Gemstone) WithLabGrown(labGrown bool) Gemstone {
	g.labGrown = labGrown
	return g
}

// DisplayName is "<grade> <type>", e.g. "VVS1 Diamond".
func (g Gemstone) DisplayName() string {
	if g.grade == "" {
		return g.kind.name
	}
	return g.grade + " " + g.kind.name
}

// Key identifies the stone's value for set membership. Type and grade
// compare case-insensitively.
func (g Gemstone) Key() string {
	carat := "-"
	if g.carat.Valid {
		carat = g.carat.Decimal.StringFixed(caratScale)
	}
	return fmt.Sprintf("%s|%s|%s|%t|%t",
		strings.ToUpper(g.kind.name), strings.ToUpper(g.grade), carat, g.certified, g.labGrown)
}

func (g Gemstone) Equal(o Gemstone) bool { return g.Key() == o.Key() }

func (g Gemstone) String() string {
	s := g.DisplayName()
	if g.carat.Valid {
		s += " " + g.carat.Decimal.StringFixed(caratScale) + " ct"
	}
	if g.labGrown {
		s += " (lab-grown)"
	}
	return s
}
