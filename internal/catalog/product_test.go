package catalog

import (
	"testing"

	"gemvault/internal/domainerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("p-1", description(t, "Solitaire engagement ring"))
	require.NoError(t, err)
	assert.Equal(t, ProductID("p-1"), p.ID())
	assert.Empty(t, p.Variants())

	_, err = NewProduct(" ", description(t, "x"))
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	_, err = NewProduct("p-2", Description{})
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestProductVariants(t *testing.T) {
	ids := &sequenceIDs{prefix: "e"}
	p, err := NewProduct("p-1", description(t, "Solitaire engagement ring"))
	require.NoError(t, err)

	seven := newRing(t, ids, "7")
	p, err = p.AddVariant(seven)
	require.NoError(t, err)

	t.Run("duplicate identity", func(t *testing.T) {
		_, err := p.AddVariant(seven)
		assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	})

	t.Run("duplicate attributes", func(t *testing.T) {
		_, err := p.AddVariant(newRing(t, ids, "7"))
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
	})

	t.Run("nil variant", func(t *testing.T) {
		_, err := p.AddVariant(nil)
		assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	})

	eight := newRing(t, ids, "8")
	withEight, err := p.AddVariant(eight)
	require.NoError(t, err)
	assert.Len(t, withEight.Variants(), 2)
	assert.Len(t, p.Variants(), 1, "receiver must not change")

	t.Run("find", func(t *testing.T) {
		v, ok := withEight.FindVariant(eight.ID())
		require.True(t, ok)
		assert.Equal(t, eight.SKU(), v.SKU())

		_, ok = withEight.FindVariant("missing")
		assert.False(t, ok)
	})

	t.Run("replace", func(t *testing.T) {
		active, err := eight.Activate()
		require.NoError(t, err)

		replaced, err := withEight.ReplaceVariant(active)
		require.NoError(t, err)
		v, _ := replaced.FindVariant(eight.ID())
		assert.Equal(t, StatusActive, v.Status())
	})

	t.Run("replace into a duplicate", func(t *testing.T) {
		resized, err := eight.ChangeSpec(seven.Spec())
		require.NoError(t, err)

		_, err = withEight.ReplaceVariant(resized)
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
	})

	t.Run("replace unknown", func(t *testing.T) {
		_, err := withEight.ReplaceVariant(newRing(t, ids, "9"))
		assert.ErrorIs(t, err, domainerr.ErrNotFound)
	})
}

func TestProductDetails(t *testing.T) {
	p, err := NewProduct("p-1", description(t, "Pearl strand"))
	require.NoError(t, err)

	p, err = p.ChangeDescription(description(t, "Freshwater pearl strand"))
	require.NoError(t, err)
	assert.Equal(t, "Freshwater pearl strand", p.Description().String())

	_, err = p.ChangeDescription(Description{})
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	img, err := NewImageURL("https://cdn.example.com/pearl.jpg")
	require.NoError(t, err)
	p = p.AddImage(img).AddImage(img)
	assert.Equal(t, 1, p.Gallery().Len())
}

func TestImageURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://cdn.example.com/a.jpg", "https://", "not a url"} {
		_, err := NewImageURL(raw)
		assert.ErrorIs(t, err, domainerr.ErrInvalidArgument, raw)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusDraft, true},
		{StatusActive, StatusInactive, true},
		{StatusInactive, StatusActive, true},
		{StatusActive, StatusDraft, false},
		{StatusDiscontinued, StatusActive, false},
		{StatusDiscontinued, StatusDiscontinued, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	st, err := ParseStatus(" Active ")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, st)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
}

func TestStyleSet(t *testing.T) {
	s, err := NewStyleSet(KindEarring, "ear cuff", "Stud", "", "STUD")
	require.NoError(t, err)
	assert.Equal(t, []string{"EAR_CUFF", "STUD"}, s.Tags())
	assert.True(t, s.Has("ear cuff"))
	assert.Equal(t, "Ear cuff, Stud", s.DisplayName())

	_, err = NewStyleSet(KindRing, "pendant")
	assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)

	other, err := NewStyleSet(KindEarring, "stud", "EAR_CUFF")
	require.NoError(t, err)
	assert.True(t, s.Equal(other))
}
