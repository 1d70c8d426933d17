package kitchen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thepass/internal/models"
)

// scriptedRandom replays fixed draws; it panics when a test under-scripts.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (s *scriptedRandom) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRandom) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func TestFlawChanceBounds(t *testing.T) {
	phases := []models.ServicePhase{models.PhaseLunch, models.PhaseMid, models.PhaseDinnerRush, "Brunch"}
	for _, phase := range phases {
		prev := 1.0
		for skill := 1.0; skill <= 10; skill += 0.25 {
			chance := FlawChance(phase, skill)
			assert.GreaterOrEqual(t, chance, 0.05)
			assert.LessOrEqual(t, chance, 0.60)
			assert.LessOrEqual(t, chance, prev, "flaw chance rose with skill in %s", phase)
			prev = chance
		}
	}

	assert.InDelta(t, 0.20, FlawChance(models.PhaseLunch, 1), 1e-9)
	assert.InDelta(t, 0.40, FlawChance(models.PhaseMid, 1), 1e-9)
	assert.InDelta(t, 0.60, FlawChance(models.PhaseDinnerRush, 1), 1e-9)
	assert.InDelta(t, 0.30, FlawChance("Brunch", 1), 1e-9)
	assert.InDelta(t, 0.40, FlawChance(models.PhaseDinnerRush, 3), 1e-9)
	assert.InDelta(t, 0.05, FlawChance(models.PhaseLunch, 5), 1e-9)
}

func TestGenerateCleanDish(t *testing.T) {
	rng := &scriptedRandom{floats: []float64{0.99, 0.99, 0.99, 0.99}}
	gen := NewGenerator(rng)

	recipe := models.NewRecipeCatalog()
	caesar, ok := recipe.Recipe(1)
	require.True(t, ok)

	dish := gen.Generate(caesar, models.PhaseLunch, 1)
	assert.Equal(t, models.TemperatureMedium, dish.Temperature)
	assert.Equal(t, models.CookPerfect, dish.CookLevel)
	assert.Equal(t, models.PlatingPerfect, dish.PlatingQuality)
	assert.Empty(t, dish.MissingIngredients)
}

func TestGenerateFlawedDish(t *testing.T) {
	rng := &scriptedRandom{
		// temperature, cook, plating, sloppy-or-acceptable, missing
		floats: []float64{0.0, 0.0, 0.0, 0.1, 0.0},
		// temperature pick, cook pick, missing count (-> 2), two indices (duplicate)
		ints: []int{0, 0, 1, 2, 2},
	}
	gen := NewGenerator(rng)
	recipe := models.Recipe{ID: 1, Name: "Test", Ingredients: []string{"a", "b", "c"}, Tier: models.TierSimple}

	dish := gen.Generate(recipe, models.PhaseDinnerRush, 1)
	assert.Equal(t, models.TemperatureBlueRaw, dish.Temperature)
	assert.Equal(t, models.CookBurnt, dish.CookLevel)
	assert.Equal(t, models.PlatingSloppy, dish.PlatingQuality)
	assert.Equal(t, []int{2}, dish.MissingIngredients)
}

func TestGenerateNoIngredientsNeverMisses(t *testing.T) {
	rng := &scriptedRandom{floats: []float64{0.99, 0.99, 0.99}}
	gen := NewGenerator(rng)

	dish := gen.Generate(models.Recipe{Name: "Water"}, models.PhaseDinnerRush, 1)
	assert.Empty(t, dish.MissingIngredients)
	assert.Empty(t, rng.floats)
}

func TestGenerateMissingIndicesInRange(t *testing.T) {
	gen := NewGenerator(NewRandom(42))
	recipe := models.Recipe{Name: "Stew", Ingredients: []string{"a", "b", "c", "d"}}

	for i := 0; i < 500; i++ {
		dish := gen.Generate(recipe, models.PhaseDinnerRush, 1)
		seen := map[int]bool{}
		assert.LessOrEqual(t, len(dish.MissingIngredients), 2)
		for _, idx := range dish.MissingIngredients {
			assert.True(t, idx >= 0 && idx < 4)
			assert.False(t, seen[idx], "duplicate missing index")
			seen[idx] = true
		}
	}
}

func TestNextQuip(t *testing.T) {
	calm := NextQuip(&scriptedRandom{ints: []int{0, 1}}, 2)
	assert.Equal(t, "Marco", calm.Speaker)
	assert.Equal(t, "Meat rests when I say it rests.", calm.Text)

	stressed := NextQuip(&scriptedRandom{ints: []int{1, 3}, floats: []float64{0.1}}, 6)
	assert.Equal(t, "Sofia", stressed.Speaker)
	assert.Equal(t, "I need a runner NOW!", stressed.Text)

	// busy but the roll stays calm
	steady := NextQuip(&scriptedRandom{ints: []int{2, 0}, floats: []float64{0.9}}, 6)
	assert.Equal(t, "Service please!", steady.Text)

	assert.Len(t, Brigade(), 8)
}
