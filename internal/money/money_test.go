package money

import (
	"testing"

	"gemvault/internal/domainerr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"pgregory.net/rapid"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewRoundsToCurrencyScale(t *testing.T) {
	usd, err := New(d("19.995"), currency.USD)
	require.NoError(t, err)
	assert.Equal(t, "USD 20.00", usd.String())

	yen, err := New(d("1999.5"), currency.JPY)
	require.NoError(t, err)
	assert.Equal(t, "JPY 2000", yen.String())

	_, err = New(d("-0.01"), currency.USD)
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestParse(t *testing.T) {
	m, err := Parse(" 1299.99 ", "eur")
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, m.Currency())
	assert.True(t, m.Amount().Equal(d("1299.99")))

	_, err = Parse("12", "ZZZ")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = Parse("twelve", "USD")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10.50", "USD")
	b := MustParse("2.25", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "USD 12.75", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "USD 8.25", diff.String())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, domainerr.ErrInvalidState)

	tripled, err := b.Mul(d("3"))
	require.NoError(t, err)
	assert.Equal(t, "USD 6.75", tripled.String())

	_, err = b.Mul(d("-1"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestCurrencyGuard(t *testing.T) {
	usd := MustParse("10", "USD")
	eur := MustParse("10", "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, domainerr.ErrCurrencyMismatch)
	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, domainerr.ErrCurrencyMismatch)
	_, err = usd.Cmp(eur)
	assert.ErrorIs(t, err, domainerr.ErrCurrencyMismatch)
	assert.False(t, usd.Equal(eur))

	c, err := usd.Cmp(MustParse("9.99", "USD"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestPercentage(t *testing.T) {
	p, err := PercentOf(d("15"))
	require.NoError(t, err)
	assert.Equal(t, "15%", p.String())
	assert.True(t, p.Fraction().Equal(d("0.15")))

	_, err = NewPercentage(d("1.01"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	_, err = NewPercentage(d("-0.1"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	assert.Equal(t, "USD 84.99", MustParse("99.99", "USD").Discount(p).String())
}

func TestDiscountNeverExceedsPrice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price, err := New(decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "cents"), -2), currency.USD)
		if err != nil {
			t.Fatal(err)
		}
		p, err := NewPercentage(decimal.New(rapid.Int64Range(0, 10_000).Draw(t, "basis"), -4))
		if err != nil {
			t.Fatal(err)
		}

		discounted := price.Discount(p)
		if c, _ := discounted.Cmp(price); c > 0 {
			t.Fatalf("%s off %s gave %s", p, price, discounted)
		}
		if discounted.Amount().IsNegative() {
			t.Fatalf("negative discount result %s", discounted)
		}
	})
}
