package composition

import (
	"strings"

	"gemvault/internal/domainerr"
)

// MaterialName is the canonical material vocabulary.
type MaterialName int

const (
	Gold MaterialName = iota + 1
	WhiteGold
	RoseGold
	Platinum
	Palladium
	Silver
	Bronze
	Copper
	StainlessSteel
	Titanium
	Tungsten
	RhodiumPlating
	OtherMaterial
)

var materialNames = map[MaterialName]string{
	Gold:           "Gold",
	WhiteGold:      "White Gold",
	RoseGold:       "Rose Gold",
	Platinum:       "Platinum",
	Palladium:      "Palladium",
	Silver:         "Silver",
	Bronze:         "Bronze",
	Copper:         "Copper",
	StainlessSteel: "Stainless Steel",
	Titanium:       "Titanium",
	Tungsten:       "Tungsten",
	RhodiumPlating: "Rhodium Plating",
	OtherMaterial:  "Other",
}

func (n MaterialName) String() string {
	if s, ok := materialNames[n]; ok {
		return s
	}
	return "Unknown"
}

// IsPrecious reports precious metals: the golds, platinum, palladium and silver.
func (n MaterialName) IsPrecious() bool {
	switch n {
	case Gold, WhiteGold, RoseGold, Platinum, Palladium, Silver:
		return true
	}
	return false
}

// ParseMaterialName accepts "White Gold", "white_gold" or "WHITE GOLD".
func ParseMaterialName(s string) (MaterialName, error) {
	want := strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	for n, name := range materialNames {
		if strings.EqualFold(name, want) {
			return n, nil
		}
	}
	return 0, domainerr.InvalidArgument("unknown material %q", s)
}

// Material is a canonical material with an optional display label.
//
// Invariants:
//   - the label is trimmed, and blank means absent
//   - OtherMaterial always carries a label
type Material struct {
	name  MaterialName
	label string
}

func NewMaterial(name MaterialName, label string) (Material, error) {
	if _, ok := materialNames[name]; !ok {
		return Material{}, domainerr.InvalidArgument("unknown material %d", int(name))
	}
	label = strings.TrimSpace(label)
	if name == OtherMaterial && label == "" {
		return Material{}, domainerr.InvalidArgument("a label is required for material Other")
	}
	return Material{name: name, label: label}, nil
}

func MustMaterial(name MaterialName, label string) Material {
	m, err := NewMaterial(name, label)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Material) Name() MaterialName { return m.name }

func (m Material) Label() (string, bool) { return m.label, m.label != "" }

func (m Material) IsPrecious() bool { return m.name.IsPrecious() }

// DisplayName prefers the label over the canonical name.
func (m Material) DisplayName() string {
	if m.label != "" {
		return m.label
	}
	return m.name.String()
}

func (m Material) WithLabel(label string) (Material, error) { return NewMaterial(m.name, label) }

func (m Material) WithoutLabel() (Material, error) { return NewMaterial(m.name, "") }

func (m Material) IsZero() bool { return m.name == 0 }

func (m Material) String() string { return m.DisplayName() }

// MaterialComposition is a material playing a role in a piece, such as
// 18k gold for the band and platinum for the prongs.
type MaterialComposition struct {
	material Material
	role     string
}

func NewMaterialComposition(m Material, role string) (MaterialComposition, error) {
	if m.IsZero() {
		return MaterialComposition{}, domainerr.InvalidArgument("material is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return MaterialComposition{}, domainerr.InvalidArgument("material role is required")
	}
	return MaterialComposition{material: m, role: role}, nil
}

func MustComposition(m Material, role string) MaterialComposition {
	c, err := NewMaterialComposition(m, role)
	if err != nil {
		panic(err)
	}
	return c
}

func (c MaterialComposition) Material() Material { return c.material }

func (c MaterialComposition) Role() string { return c.role }

func (c MaterialComposition) String() string { return c.material.DisplayName() + " " + c.role }
