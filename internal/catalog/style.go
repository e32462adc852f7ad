package catalog

import (
	"slices"
	"strings"

	"gemvault/internal/domainerr"
)

var styleVocabulary = map[Kind][]string{
	KindRing: {
		"SOLITAIRE", "HALO", "PAVE", "CHANNEL_SET", "PRONG_SET", "BEZEL_SET",
		"VINTAGE", "MODERN", "CLASSIC", "BAND", "STACKABLE",
	},
	KindNecklace: {
		"PENDANT", "CHAIN", "BEADED", "CHOKER", "LARIAT", "OPERA",
		"RIVIERA", "LAYERED", "COLLAR", "PEARL",
	},
	KindEarring: {
		"STUD", "HOOP", "DROP", "DANGLE", "CHANDELIER", "JACKET",
		"CLUSTER", "HUGGIE", "THREADER", "EAR_CUFF",
	},
	KindAnklet: {
		"BEADED", "CHAIN", "CHARM", "LINK", "CUFF", "GEMSTONE",
		"LAYERED", "PEARL", "ROPE", "SLIDER",
	},
	KindHairAccessory: {
		"CLIP", "SCRUNCHIE", "BARRETTE", "TIARA", "HEADBAND",
		"HAIR_COMB", "HAIR_PIN", "PONYTAIL_HOLDER",
	},
}

// Styles lists the style vocabulary of a category.
func (k Kind) Styles() []string {
	return slices.Clone(styleVocabulary[k])
}

// StyleSet is a validated set of style tags for one category.
//
// Invariants:
//   - every tag is upper-case with underscores for spaces
//   - every tag belongs to the category's vocabulary
//   - tags are unique and sorted
type StyleSet struct {
	kind Kind
	tags []string
}

// NewStyleSet normalizes and validates tags. Blank tags are dropped.
func NewStyleSet(kind Kind, tags ...string) (StyleSet, error) {
	vocabulary, ok := styleVocabulary[kind]
	if !ok {
		return StyleSet{}, domainerr.InvalidArgument("unknown category %q", kind)
	}
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := normalizeStyle(raw)
		if tag == "" {
			continue
		}
		if !slices.Contains(vocabulary, tag) {
			return StyleSet{}, domainerr.InvalidArgument("invalid %s style %q", kind, raw)
		}
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return StyleSet{kind: kind, tags: out}, nil
}

// MustStyleSet is NewStyleSet for literals known to be valid.
func MustStyleSet(kind Kind, tags ...string) StyleSet {
	s, err := NewStyleSet(kind, tags...)
	if err != nil {
		panic(err)
	}
	return s
}

func normalizeStyle(tag string) string {
	return strings.ToUpper(strings.Join(strings.Fields(tag), "_"))
}

func (s StyleSet) Kind() Kind { return s.kind }

func (s StyleSet) Tags() []string { return slices.Clone(s.tags) }

func (s StyleSet) Len() int { return len(s.tags) }

// Has matches a tag case-insensitively.
func (s StyleSet) Has(tag string) bool {
	return slices.Contains(s.tags, normalizeStyle(tag))
}

func (s StyleSet) Equal(o StyleSet) bool {
	return s.kind == o.kind && slices.Equal(s.tags, o.tags)
}

// DisplayName renders "EAR_CUFF" as "Ear cuff", comma separated.
func (s StyleSet) DisplayName() string {
	names := make([]string, len(s.tags))
	for i, tag := range s.tags {
		words := strings.ToLower(strings.ReplaceAll(tag, "_", " "))
		names[i] = strings.ToUpper(words[:1]) + words[1:]
	}
	return strings.Join(names, ", ")
}

func (s StyleSet) String() string { return s.DisplayName() }
