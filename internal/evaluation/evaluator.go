package evaluation

import (
	"fmt"
	"math"

	"thepass/internal/models"
)

// DefaultAccuracyRequirement is the normalized score a dish needs to be acceptable
// when the player has not changed the setting.
const DefaultAccuracyRequirement = 80

// PerfectThreshold is the normalized score at or above which a dish is perfect.
const PerfectThreshold = 95

// maxScore is the best attainable raw score: perfect cook, plating and no missing ingredients.
const maxScore = 15

// EvaluateDish inspects a dish against its recipe. Issues are tagged in the order
// cook level, plating, missing ingredients, temperature.
func EvaluateDish(dish models.Dish, recipe models.Recipe, accuracyRequirement float64) models.EvaluationResult {
	score := 0
	issues := []string{}

	switch dish.CookLevel {
	case models.CookBurnt:
		score -= 20
		issues = append(issues, "BURNT")
	case models.CookUndercooked:
		score -= 10
		issues = append(issues, "UNDERCOOKED")
	case models.CookOvercooked:
		score -= 5
		issues = append(issues, "OVERCOOKED")
	case models.CookPerfect:
		score += 5
	}

	switch dish.PlatingQuality {
	case models.PlatingSloppy:
		score -= 10
		issues = append(issues, "SLOPPY PLATING")
	case models.PlatingAcceptable:
		score -= 2
	case models.PlatingPerfect:
		score += 5
	}

	if n := len(dish.MissingIngredients); n > 0 {
		score -= 8 * n
		issues = append(issues, fmt.Sprintf("MISSING %d INGREDIENT(S)", n))
	} else {
		score += 5
	}

	switch dish.Temperature {
	case models.TemperatureBlueRaw:
		score -= 15
		issues = append(issues, "RAW")
	case models.TemperatureWellDone:
		score -= 5
		issues = append(issues, "OVERDONE")
	}

	normalized := math.Max(0, math.Min(100, float64(score)/maxScore*100))
	acceptable := normalized >= accuracyRequirement

	return models.EvaluationResult{
		Score:               score,
		NormalizedScore:     normalized,
		Issues:              issues,
		IsPerfect:           normalized >= PerfectThreshold,
		IsAcceptable:        acceptable,
		IsFlawed:            !acceptable,
		AccuracyRequirement: accuracyRequirement,
	}
}
