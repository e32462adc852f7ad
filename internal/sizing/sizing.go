// Package sizing holds the regional ring-size charts and the nearest-match
// search across them. Every chart maps a display label to an inner diameter
// in millimetres.
package sizing

import (
	"strings"

	"gemvault/internal/domainerr"
	"gemvault/internal/quantity"

	"github.com/shopspring/decimal"
)

const diameterScale int32 = 2

// Pi to twenty places, enough for any circumference at millimetre scale.
var pi = decimal.RequireFromString("3.14159265358979323846")

// Region identifies a sizing convention.
type Region string

const (
	US   Region = "US"
	UKAU Region = "UK"
	EU   Region = "EU"
	DE   Region = "DE"
	Asia Region = "ASIA"
)

var regionNames = map[Region]string{
	US:   "US/Canada",
	UKAU: "UK/Australia",
	EU:   "EU",
	DE:   "German",
	Asia: "Asian",
}

var regionAliases = map[string]Region{
	"us": US, "usa": US, "na": US, "ca": US, "us/canada": US,
	"uk": UKAU, "au": UKAU, "ukau": UKAU, "uk/au": UKAU, "uk/aus": UKAU, "uk/australia": UKAU,
	"eu": EU, "eur": EU, "iso": EU,
	"de": DE, "german": DE, "germany": DE,
	"asia": Asia, "asian": Asia, "jp": Asia, "cn": Asia,
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRegion resolves a user-supplied region name such as "uk/aus" or "jp".
func ParseRegion(s string) (Region, error) {
	if r, ok := regionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", domainerr.InvalidArgument("unknown sizing region %q", s)
}

// Regions lists every supported region in a stable order.
func Regions() []Region {
	return []Region{US, UKAU, EU, DE, Asia}
}

// Entry is one row of a regional chart.
type Entry struct {
	Region     Region
	Label      string
	DiameterMM decimal.Decimal
}

// CircumferenceMM returns the inner circumference at two decimals.
func (e Entry) CircumferenceMM() decimal.Decimal {
	return CircumferenceMM(e.DiameterMM)
}

// ConvertTo finds the entry of another region closest to this one's diameter.
func (e Entry) ConvertTo(region Region) (Entry, bool) {
	return Nearest(region, e.DiameterMM)
}

func (e Entry) String() string {
	return e.Region.String() + " " + e.Label
}

// Table returns a copy of a region's chart ordered by increasing diameter.
func Table(region Region) []Entry {
	src := tables[region]
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// Lookup finds the entry with the given label. Labels match
// case-insensitively, and "7.5" is accepted for "7 1/2".
func Lookup(region Region, label string) (Entry, bool) {
	want := normalizeLabel(label)
	for _, e := range tables[region] {
		if strings.EqualFold(e.Label, want) {
			return e, true
		}
	}
	if half, ok := halfLabel(want); ok {
		for _, e := range tables[region] {
			if strings.EqualFold(e.Label, half) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Nearest returns the entry whose diameter is closest to target after
// rounding target to two decimals. Equidistant entries resolve to the
// larger diameter.
func Nearest(region Region, target decimal.Decimal) (Entry, bool) {
	entries := tables[region]
	if len(entries) == 0 {
		return Entry{}, false
	}
	t := quantity.Round(target, diameterScale, quantity.HalfUp)

	best := entries[0]
	bestDist := t.Sub(best.DiameterMM).Abs()
	for _, e := range entries[1:] {
		d := t.Sub(e.DiameterMM).Abs()
		switch c := d.Cmp(bestDist); {
		case c < 0:
			best, bestDist = e, d
		case c == 0 && e.DiameterMM.GreaterThan(best.DiameterMM):
			best = e
		}
	}
	return best, true
}

// CircumferenceMM converts an inner diameter to circumference.
func CircumferenceMM(diameter decimal.Decimal) decimal.Decimal {
	return quantity.Round(diameter.Mul(pi), diameterScale, quantity.HalfUp)
}

// DiameterFromCircumference is the inverse of CircumferenceMM.
func DiameterFromCircumference(circumference decimal.Decimal) decimal.Decimal {
	d, _ := quantity.Divide(circumference, pi, diameterScale, quantity.HalfUp)
	return d
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

func halfLabel(label string) (string, bool) {
	whole, ok := strings.CutSuffix(label, ".5")
	if !ok || whole == "" {
		return "", false
	}
	return whole + " 1/2", true
}
