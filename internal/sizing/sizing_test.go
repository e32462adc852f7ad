package sizing

import (
	"testing"

	"gemvault/internal/domainerr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mm(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTablesHaveUniqueAscendingLabels(t *testing.T) {
	for _, region := range Regions() {
		t.Run(region.String(), func(t *testing.T) {
			entries := Table(region)
			require.NotEmpty(t, entries)
			seen := map[string]bool{}
			for i, e := range entries {
				assert.Equal(t, region, e.Region)
				assert.False(t, seen[e.Label], "duplicate label %q", e.Label)
				seen[e.Label] = true
				if i > 0 {
					assert.True(t, e.DiameterMM.GreaterThanOrEqual(entries[i-1].DiameterMM), "%s not ascending", e.Label)
				}
			}
		})
	}
}

func TestTableReturnsCopy(t *testing.T) {
	entries := Table(US)
	entries[0].Label = "mutated"
	e, ok := Lookup(US, "4")
	require.True(t, ok)
	assert.Equal(t, "4", e.Label)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		region Region
		label  string
		want   string
		ok     bool
	}{
		{US, "7", "17.3", true},
		{US, " 7 1/2 ", "17.7", true},
		{US, "7.5", "17.7", true},
		{UKAU, "n 1/2", "17.4", true},
		{UKAU, "n  1/2", "17.4", true},
		{EU, "54", "17.19", true},
		{DE, "15.5", "15.5", true},
		{Asia, "14", "17.3", true},
		{US, "3", "", false},
		{UKAU, "Z", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.region)+"/"+tt.label, func(t *testing.T) {
			e, ok := Lookup(tt.region, tt.label)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, e.DiameterMM.Equal(mm(tt.want)), "got %s", e.DiameterMM)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		target string
		want   string
	}{
		{"exact", US, "17.3", "7"},
		{"rounded target", US, "17.304", "7"},
		{"below chart", US, "10", "4"},
		{"above chart", US, "30", "13"},
		{"uk closest", UKAU, "17.31", "N 1/2"},
		{"eu closest", EU, "17.31", "54"},
		{"german tie prefers larger", DE, "15.25", "15.5"},
		{"us tie prefers larger", US, "17.5", "7 1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Nearest(tt.region, mm(tt.target))
			require.True(t, ok)
			assert.Equal(t, tt.want, e.Label)
		})
	}
}

func TestNearestUnknownRegion(t *testing.T) {
	_, ok := Nearest(Region("MARS"), mm("17"))
	assert.False(t, ok)

	e, _ := Lookup(US, "7")
	_, ok = e.ConvertTo(Region("MARS"))
	assert.False(t, ok)
}

func TestConvertTo(t *testing.T) {
	us7, ok := Lookup(US, "7")
	require.True(t, ok)

	uk, ok := us7.ConvertTo(UKAU)
	require.True(t, ok)
	assert.Equal(t, "N 1/2", uk.Label)

	asia, ok := us7.ConvertTo(Asia)
	require.True(t, ok)
	assert.Equal(t, "14", asia.Label)

	de, ok := us7.ConvertTo(DE)
	require.True(t, ok)
	assert.Equal(t, "17.5", de.Label)
}

func TestCircumference(t *testing.T) {
	assert.Equal(t, "54.38", CircumferenceMM(mm("17.31")).StringFixed(2))
	assert.Equal(t, "17.31", DiameterFromCircumference(mm("54.38")).StringFixed(2))

	e, _ := Lookup(EU, "54")
	assert.Equal(t, "54.00", e.CircumferenceMM().StringFixed(2))
}

func TestParseRegion(t *testing.T) {
	for in, want := range map[string]Region{
		"US": US, "na": US, "UK/AUS": UKAU, "eur": EU, "German": DE, " jp ": Asia,
	} {
		got, err := ParseRegion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRegion("atlantis")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestNearestIsMinimal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		region := rapid.SampledFrom(Regions()).Draw(t, "region")
		target := decimal.New(rapid.Int64Range(1000, 2500).Draw(t, "hundredths"), -2)

		got, ok := Nearest(region, target)
		if !ok {
			t.Fatalf("no entry for %s", region)
		}
		dist := target.Sub(got.DiameterMM).Abs()
		for _, e := range Table(region) {
			d := target.Sub(e.DiameterMM).Abs()
			if d.LessThan(dist) {
				t.Fatalf("%s is closer to %s than %s", e.Label, target, got.Label)
			}
			if d.Equal(dist) && e.DiameterMM.GreaterThan(got.DiameterMM) {
				t.Fatalf("tie at %s should prefer %s over %s", target, e.Label, got.Label)
			}
		}
	})
}

func TestNearestReturnsExactEntry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		region := rapid.SampledFrom(Regions()).Draw(t, "region")
		entries := Table(region)
		want := entries[rapid.IntRange(0, len(entries)-1).Draw(t, "index")]

		got, ok := Nearest(region, want.DiameterMM)
		if !ok || got.Label != want.Label {
			t.Fatalf("nearest(%s) = %s, want %s", want.DiameterMM, got.Label, want.Label)
		}
	})
}
