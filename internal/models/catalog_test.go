package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeCatalogLookup(t *testing.T) {
	catalog := NewRecipeCatalog()

	r, ok := catalog.Recipe(1)
	require.True(t, ok)
	assert.Equal(t, "Caesar Salad", r.Name)
	assert.Equal(t, DefaultPrepTime, r.EffectivePrepTime())
	assert.Equal(t, "Normal", r.DifficultyLabel())

	duck, ok := catalog.Recipe(10)
	require.True(t, ok)
	assert.Equal(t, 180, duck.EffectivePrepTime())
	assert.Equal(t, "Complex", duck.DifficultyLabel())

	_, ok = catalog.Recipe(9999)
	assert.False(t, ok)
}

func TestRecipeCatalogByTier(t *testing.T) {
	catalog := NewRecipeCatalog()

	simple := catalog.ByTier(TierSimple)
	assert.Len(t, simple, 7)
	assert.Equal(t, 1, simple[0].ID)

	assert.Len(t, catalog.ByTier(TierFrench), 5)
	assert.Len(t, catalog.ByTier(TierMedium), 7)
	assert.Len(t, catalog.ByTier(TierComplex), 6)
	assert.Empty(t, catalog.ByTier("dessert"))

	for _, id := range DefaultMenu {
		_, ok := catalog.Recipe(id)
		assert.True(t, ok, "default menu recipe %d missing", id)
	}
	for _, id := range StarterRecipes {
		r, ok := catalog.Recipe(id)
		require.True(t, ok)
		assert.Equal(t, TierSimple, r.Tier)
	}
}

func TestLoadRecipeCatalog(t *testing.T) {
	doc := `
recipes:
  - id: 42
    name: Omelette
    tier: simple
    ingredients: [egg, butter, chives]
    base_cost: 8
    base_rep_value: 3
    prep_time: 30
`
	catalog, err := LoadRecipeCatalog(strings.NewReader(doc))
	require.NoError(t, err)

	r, ok := catalog.Recipe(42)
	require.True(t, ok)
	assert.Equal(t, []string{"egg", "butter", "chives"}, r.Ingredients)
	assert.Equal(t, 30, r.EffectivePrepTime())
	assert.Equal(t, 8.0, r.BaseCost)
}

func TestLoadRecipeCatalogRejectsBadInput(t *testing.T) {
	dup := `
recipes:
  - {id: 1, name: A, tier: simple}
  - {id: 1, name: B, tier: simple}
`
	_, err := LoadRecipeCatalog(strings.NewReader(dup))
	assert.Error(t, err)

	badTier := `
recipes:
  - {id: 1, name: A, tier: dessert}
`
	_, err = LoadRecipeCatalog(strings.NewReader(badTier))
	assert.Error(t, err)
}

func TestTierUnlocked(t *testing.T) {
	assert.True(t, TierUnlocked(TierSimple, MilestoneSousChef))
	assert.False(t, TierUnlocked(TierMedium, MilestoneSousChef))
	assert.True(t, TierUnlocked(TierMedium, MilestoneHeadChef))
	assert.False(t, TierUnlocked(TierComplex, MilestoneHeadChef))
	assert.True(t, TierUnlocked(TierFrench, MilestoneExecutiveChef))
	assert.True(t, TierUnlocked(TierComplex, MilestoneMichelinStar))
}
