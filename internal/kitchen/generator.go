package kitchen

import (
	"math"

	"thepass/internal/models"
)

const (
	minFlawChance      = 0.05
	skillFlawReduction = 0.10
)

// FlawChance is the probability that any single attribute of a dish comes out flawed.
// It rises with the rush of the dining room and falls with the skill of the crew.
func FlawChance(phase models.ServicePhase, averageSkill float64) float64 {
	var base float64
	switch phase {
	case models.PhaseLunch:
		base = 0.20
	case models.PhaseMid:
		base = 0.40
	case models.PhaseDinnerRush:
		base = 0.60
	default:
		base = 0.30
	}
	return math.Max(minFlawChance, base-(averageSkill-1)*skillFlawReduction)
}

// Generator cooks dishes for tickets
type Generator struct {
	rng Random
}

// NewGenerator creates a generator drawing from rng
func NewGenerator(rng Random) *Generator {
	return &Generator{rng: rng}
}

// Generate cooks a dish for recipe. Each attribute is drawn independently, in the order
// temperature, cook level, plating, missing ingredients.
func (g *Generator) Generate(recipe models.Recipe, phase models.ServicePhase, averageSkill float64) models.Dish {
	flaw := FlawChance(phase, averageSkill)

	dish := models.Dish{
		Temperature:        models.TemperatureMedium,
		CookLevel:          models.CookPerfect,
		PlatingQuality:     models.PlatingPerfect,
		MissingIngredients: []int{},
	}

	if g.rng.Float64() < flaw {
		dish.Temperature = models.Temperatures[g.rng.Intn(len(models.Temperatures))]
	}
	if g.rng.Float64() < flaw {
		dish.CookLevel = models.FlawedCookLevels[g.rng.Intn(len(models.FlawedCookLevels))]
	}
	if g.rng.Float64() < flaw {
		if g.rng.Float64() < 0.5 {
			dish.PlatingQuality = models.PlatingSloppy
		} else {
			dish.PlatingQuality = models.PlatingAcceptable
		}
	}

	n := len(recipe.Ingredients)
	if n > 0 && g.rng.Float64() < flaw*0.5 {
		count := 1 + g.rng.Intn(2)
		seen := make(map[int]bool, count)
		for i := 0; i < count; i++ {
			idx := g.rng.Intn(n)
			if seen[idx] {
				continue
			}
			seen[idx] = true
			dish.MissingIngredients = append(dish.MissingIngredients, idx)
		}
	}

	return dish
}
