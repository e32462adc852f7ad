package catalog

import (
	"fmt"
	"testing"

	"gemvault/internal/composition"
	"gemvault/internal/measure"
	"gemvault/internal/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sequenceIDs hands out predictable identifiers.
type sequenceIDs struct {
	prefix string
	n      int
}

func (g *sequenceIDs) NewID() string {
	g.n++
	return fmt.Sprintf("%s%04d-0000-4000-8000-000000000000", g.prefix, g.n)
}

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) NewID() string {
	return m.Called().String(0)
}

var (
	goldBand       = composition.MustComposition(composition.MustMaterial(composition.Gold, ""), "band")
	platinumProngs = composition.MustComposition(composition.MustMaterial(composition.Platinum, ""), "prongs")
	silverChain    = composition.MustComposition(composition.MustMaterial(composition.Silver, ""), "chain")

	polishCare = MustCareInstructions("Polish gently with a soft, dry cloth.")
)

func usd(t testing.TB, amount string) money.Money {
	t.Helper()
	m, err := money.Parse(amount, "USD")
	require.NoError(t, err)
	return m
}

func ringSpec(t testing.TB, us string, styles ...string) RingSpec {
	t.Helper()
	size, err := measure.RingSizeFromUS(decimal.RequireFromString(us))
	require.NoError(t, err)
	return RingSpec{Size: size, Styles: MustStyleSet(KindRing, styles...)}
}

func necklaceSpec(t testing.TB, inches string, styles ...string) NecklaceSpec {
	t.Helper()
	length, err := measure.NecklaceLengthFromInches(decimal.RequireFromString(inches))
	require.NoError(t, err)
	return NecklaceSpec{Length: length, Styles: MustStyleSet(KindNecklace, styles...)}
}

func newRing(t testing.TB, ids IDGenerator, us string) RingVariant {
	t.Helper()
	v, err := Create(ids, ringSpec(t, us, "solitaire"), usd(t, "1200.00"),
		[]composition.MaterialComposition{goldBand, platinumProngs}, polishCare)
	require.NoError(t, err)
	return v
}

func newNecklace(t testing.TB, ids IDGenerator, inches string) NecklaceVariant {
	t.Helper()
	v, err := Create(ids, necklaceSpec(t, inches, "pendant"), usd(t, "340.00"),
		[]composition.MaterialComposition{silverChain}, polishCare)
	require.NoError(t, err)
	return v
}

func description(t testing.TB, text string) Description {
	t.Helper()
	d, err := NewDescription(text)
	require.NoError(t, err)
	return d
}
