package measure

import (
	"testing"

	"gemvault/internal/domainerr"
	"gemvault/internal/sizing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConvertSameUnitIsUntouched(t *testing.T) {
	v := d("1.23456789")
	got, err := Mass.Convert(v, Ounce, Ounce)
	require.NoError(t, err)
	assert.Equal(t, v.String(), got.String())
}

func TestConvertRejectsForeignUnits(t *testing.T) {
	_, err := Mass.Convert(d("1"), Gram, Inch)
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = DropLength.Convert(d("1"), Carat, Inch)
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestConvertFactors(t *testing.T) {
	tests := []struct {
		dim      Dimension
		v        string
		from, to Unit
		want     string
	}{
		{Mass, "1", Ounce, Gram, "28.3495"},
		{Mass, "1", TroyOunce, Gram, "31.1035"},
		{Mass, "5", Carat, Gram, "1.0000"},
		{Mass, "1", Pennyweight, Gram, "1.5552"},
		{Mass, "20", Pennyweight, TroyOunce, "1.0000"},
		{Mass, "2500", Milligram, Kilogram, "0.0025"},
		{Diameter, "1", Inch, Millimeter, "25.40"},
		{Diameter, "1.731", Centimeter, Millimeter, "17.31"},
		{DropLength, "45.72", Centimeter, Inch, "18.00"},
		{DropLength, "18", Inch, Millimeter, "457.20"},
	}
	for _, tt := range tests {
		t.Run(tt.v+tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := tt.dim.Convert(d(tt.v), tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(tt.dim.Scale()))
		})
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{
		"mm": Millimeter, "Inches": Inch, "\"": Inch, "troy ounce": TroyOunce,
		"OZT": TroyOunce, "ct": Carat, "dwt": Pennyweight, " g ": Gram,
	} {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnit("furlong")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestRoundTripWithinScale(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dim := rapid.SampledFrom([]Dimension{Diameter, DropLength, Mass}).Draw(t, "dim")
		accepted := dim.Units()
		u := rapid.SampledFrom(accepted).Draw(t, "u")
		v := rapid.SampledFrom(accepted).Draw(t, "v")
		x := decimal.New(rapid.Int64Range(1, 10_000_000).Draw(t, "units"), -dim.Scale())

		there, err := dim.Convert(x, u, v)
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		back, err := dim.Convert(there, v, u)
		if err != nil {
			t.Fatalf("convert back: %v", err)
		}

		if got := back.Round(dim.Scale()); !got.Equal(x) {
			t.Fatalf("%s %s -> %s %s -> %s %s does not restore %s", x, u, there, v, back, u, x)
		}
		if u == v && !back.Equal(x) {
			t.Fatalf("identity conversion changed %s to %s", x, back)
		}
	})
}

func TestConversionKeepsPrecision(t *testing.T) {
	x := d("1.2345")
	for _, u := range []Unit{Kilogram, Ounce, TroyOunce, Pennyweight, Carat, Milligram} {
		there, err := Mass.Convert(x, Gram, u)
		require.NoError(t, err)
		back, err := Mass.Convert(there, u, Gram)
		require.NoError(t, err)
		assert.Equal(t, "1.2345", back.StringFixed(Mass.Scale()), "via %s", u)
	}

	small, err := WeightFromGrams(d("0.04"))
	require.NoError(t, err)
	kg, err := small.To(Kilogram)
	require.NoError(t, err)
	assert.True(t, kg.Equal(small))
	assert.Equal(t, "0.00004 kg", kg.String())

	ring, err := RingSizeFromDiameter(d("17.31"))
	require.NoError(t, err)
	in, err := ring.To(Inch)
	require.NoError(t, err)
	assert.True(t, in.Equal(ring))
	assert.Equal(t, "17.31", in.DiameterMM().StringFixed(2))
}

func TestUnitScale(t *testing.T) {
	assert.Equal(t, int32(6), Mass.UnitScale(Milligram))
	assert.Equal(t, int32(9), Mass.UnitScale(Gram))
	assert.Equal(t, int32(12), Mass.UnitScale(Kilogram))
	assert.Equal(t, int32(4), Diameter.UnitScale(Millimeter))
	assert.Equal(t, int32(5), Diameter.UnitScale(Inch))
}

func TestWeight(t *testing.T) {
	oz, err := WeightFromOunces(d("1"))
	require.NoError(t, err)

	g, err := oz.In(Gram)
	require.NoError(t, err)
	assert.Equal(t, "28.3495", g.StringFixed(4))
	assert.Equal(t, "1.0000 oz", oz.String())

	grams, err := WeightFromGrams(d("28.3495"))
	require.NoError(t, err)
	assert.True(t, oz.Equal(grams))

	sum, err := oz.Add(grams)
	require.NoError(t, err)
	assert.Equal(t, "56.6990", sum.Grams().StringFixed(4))
	assert.Equal(t, Gram, sum.Unit())

	ct, err := WeightFromCarats(d("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "0.3000", ct.Grams().StringFixed(4))
	assert.Equal(t, -1, ct.Cmp(oz))
}

func TestWeightSub(t *testing.T) {
	ten, _ := WeightFromGrams(d("10"))
	three, _ := WeightFromGrams(d("3"))

	left, err := ten.Sub(three)
	require.NoError(t, err)
	assert.Equal(t, "7.0000", left.Grams().StringFixed(4))

	_, err = three.Sub(ten)
	assert.ErrorIs(t, err, domainerr.ErrInvalidState)
}

func TestWeightBounds(t *testing.T) {
	_, err := WeightFromGrams(d("100000"))
	assert.NoError(t, err)

	_, err = WeightFromGrams(d("100000.0001"))
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)

	_, err = WeightOf(d("101"), Kilogram)
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)

	for _, v := range []string{"0", "-1", "0.00001"} {
		_, err = WeightFromGrams(d(v))
		assert.ErrorIs(t, err, domainerr.ErrInvalidArgument, v)
	}

	_, err = WeightOf(d("1"), Inch)
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestRingSizeFactoriesAgree(t *testing.T) {
	us, err := RingSizeFromUS(d("7"))
	require.NoError(t, err)
	iso, err := RingSizeFromDiameter(d("17.31"))
	require.NoError(t, err)
	circ, err := RingSizeFromCircumference(d("54.38"))
	require.NoError(t, err)
	cm, err := RingSizeOf(d("1.73"), Centimeter)
	require.NoError(t, err)

	assert.True(t, us.Equal(iso))
	assert.True(t, circ.Equal(iso))
	assert.Equal(t, "17.30", cm.DiameterMM().StringFixed(2))
	assert.Equal(t, 1, iso.Cmp(cm))
	assert.Equal(t, "7.00", iso.USSize().StringFixed(2))
	assert.Equal(t, "54.38", iso.CircumferenceMM().StringFixed(2))
}

func TestRingSizeRegional(t *testing.T) {
	r, err := RingSizeFromRegional(sizing.UKAU, "n 1/2")
	require.NoError(t, err)
	assert.Equal(t, "17.40", r.DiameterMM().StringFixed(2))

	e, ok := r.Nearest(sizing.US)
	require.True(t, ok)
	assert.Equal(t, "7", e.Label)

	_, err = RingSizeFromRegional(sizing.US, "Z")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestRingSizeUSDisplay(t *testing.T) {
	tests := []struct {
		us    string
		label string
		ok    bool
	}{
		{"7", "7", true},
		{"7.5", "7 1/2", true},
		{"13", "13", true},
		{"7.25", "", false},
		{"3", "", false},
	}
	for _, tt := range tests {
		r, err := RingSizeFromUS(d(tt.us))
		require.NoError(t, err, tt.us)
		label, ok := r.USDisplay()
		assert.Equal(t, tt.ok, ok, tt.us)
		assert.Equal(t, tt.label, label, tt.us)
	}

	iso, err := RingSizeFromDiameter(d("17.31"))
	require.NoError(t, err)
	label, ok := iso.USDisplay()
	require.True(t, ok)
	assert.Equal(t, "7", label)
}

func TestRingSizeValidation(t *testing.T) {
	_, err := RingSizeFromDiameter(d("40.01"))
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)

	_, err = RingSizeFromDiameter(d("0.004"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = RingSizeFromUS(d("-1"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = RingSizeFromCircumference(d("0"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	r, _ := RingSizeFromDiameter(d("17"))
	_, err = r.In(Gram)
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestRingSizeTo(t *testing.T) {
	r, _ := RingSizeFromDiameter(d("25.4"))
	in, err := r.To(Inch)
	require.NoError(t, err)
	assert.Equal(t, "1.00 in", in.String())
	assert.True(t, in.Equal(r))
}

func TestNecklaceExamples(t *testing.T) {
	n18, err := NecklaceLengthFromInches(d("18"))
	require.NoError(t, err)
	label, ok := n18.Classify()
	require.True(t, ok)
	assert.Equal(t, "Princess", label)

	n181, err := NecklaceLengthFromInches(d("18.1"))
	require.NoError(t, err)
	label, _ = n181.Classify()
	assert.Equal(t, "Matinee", label)

	cm, err := NecklaceLengthFromCentimeters(d("45.72"))
	require.NoError(t, err)
	assert.True(t, cm.Equal(n18))
	assert.Equal(t, "18.00", cm.Inches().StringFixed(2))

	inCM, err := n18.In(Centimeter)
	require.NoError(t, err)
	assert.Equal(t, "45.72", inCM.StringFixed(2))
}

func TestClassificationBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		classify func(decimal.Decimal) (string, bool)
		c        classification
		lowest   string
	}{
		{"necklace", func(v decimal.Decimal) (string, bool) {
			n, err := NecklaceLengthFromInches(v)
			require.NoError(t, err)
			return n.Classify()
		}, necklaceClasses, "Collar"},
		{"anklet", func(v decimal.Decimal) (string, bool) {
			a, err := AnkletLengthFromInches(v)
			require.NoError(t, err)
			return a.Classify()
		}, ankletClasses, "Petite"},
		{"ring", func(v decimal.Decimal) (string, bool) {
			r, err := RingSizeFromDiameter(v)
			require.NoError(t, err)
			return r.Classify()
		}, ringClasses, "Petite"},
		{"earring", func(v decimal.Decimal) (string, bool) {
			e, err := EarringSizeFromMillimeters(v, "")
			require.NoError(t, err)
			return e.Classify()
		}, earringClasses, "Petite"},
		{"weight", func(v decimal.Decimal) (string, bool) {
			w, err := WeightFromGrams(v)
			require.NoError(t, err)
			return w.Classify()
		}, weightClasses, "Delicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := tt.classify(d("0.01"))
			require.True(t, ok)
			assert.Equal(t, tt.lowest, label)

			labels := tt.c.labels()
			for i, b := range tt.c {
				if b.open {
					continue
				}
				at, ok := tt.classify(b.upper)
				require.True(t, ok)
				assert.Equal(t, labels[i], at, "at %s", b.upper)

				above, ok := tt.classify(b.upper.Add(d("0.01")))
				require.True(t, ok)
				assert.Equal(t, labels[i+1], above, "just above %s", b.upper)
			}
		})
	}
}

func TestClassifyEveryPositiveValue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := decimal.New(rapid.Int64Range(1, 12_000).Draw(t, "hundredths"), -2)
		n, err := NecklaceLengthFromInches(v)
		if err != nil {
			t.Fatalf("necklace %s: %v", v, err)
		}
		label, ok := n.Classify()
		if !ok {
			t.Fatalf("%s has no class", v)
		}
		matches := 0
		prev := decimal.Zero
		for i, b := range necklaceClasses {
			inside := v.GreaterThan(prev) && (b.open || v.LessThanOrEqual(b.upper))
			if i == 0 {
				inside = v.LessThanOrEqual(b.upper)
			}
			if inside {
				matches++
				if b.label != label {
					t.Fatalf("%s classified %s, bucket says %s", v, label, b.label)
				}
			}
			prev = b.upper
		}
		if matches != 1 {
			t.Fatalf("%s falls into %d buckets", v, matches)
		}
	})
}

func TestEarringSize(t *testing.T) {
	e, err := EarringSizeFromMillimeters(d("7"), "  7mm stud ")
	require.NoError(t, err)
	label, ok := e.Label()
	require.True(t, ok)
	assert.Equal(t, "7mm stud", label)
	assert.Equal(t, "7.00 mm (7mm stud)", e.String())

	plain, _ := EarringSizeFromMillimeters(d("7"), " ")
	_, ok = plain.Label()
	assert.False(t, ok)
	assert.Equal(t, 0, e.Cmp(plain))
	assert.False(t, e.Equal(plain))
	assert.True(t, e.Equal(plain.WithLabel("7mm stud")))

	_, err = EarringSizeFromMillimeters(d("201"), "")
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)
}

func TestHairAccessorySize(t *testing.T) {
	h, err := NewHairAccessorySize(d("80"), decimal.NewNullDecimal(d("12.345")), "claw clip")
	require.NoError(t, err)
	w, ok := h.WidthMM()
	require.True(t, ok)
	assert.Equal(t, "12.35", w.StringFixed(2))
	class, _ := h.Classify()
	assert.Equal(t, "Medium", class)
	assert.Equal(t, "80.00 mm x 12.35 mm (claw clip)", h.String())

	same, _ := NewHairAccessorySize(d("80.00"), decimal.NewNullDecimal(d("12.35")), "claw clip")
	assert.True(t, h.Equal(same))

	noWidth, _ := NewHairAccessorySize(d("80"), decimal.NullDecimal{}, "claw clip")
	assert.False(t, h.Equal(noWidth))

	_, err = NewHairAccessorySize(d("10"), decimal.NewNullDecimal(d("11")), "")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = NewHairAccessorySize(d("10"), decimal.NewNullDecimal(d("0")), "")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = NewHairAccessorySize(d("501"), decimal.NullDecimal{}, "")
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)
}

func TestAnkletLength(t *testing.T) {
	a, err := AnkletLengthFromCentimeters(d("25.4"))
	require.NoError(t, err)
	assert.Equal(t, "10.00", a.Inches().StringFixed(2))
	class, _ := a.Classify()
	assert.Equal(t, "Standard", class)

	_, err = AnkletLengthFromInches(d("30.01"))
	assert.ErrorIs(t, err, domainerr.ErrOutOfRange)
}
