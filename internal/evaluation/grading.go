package evaluation

import (
	"math"

	"thepass/internal/models"
)

type gradeThresholds struct {
	s, a, b float64
}

var thresholdTable = map[models.GradingDifficulty]gradeThresholds{
	models.GradingEasy:   {s: 90, a: 75, b: 60},
	models.GradingNormal: {s: 95, a: 85, b: 70},
	models.GradingHard:   {s: 98, a: 92, b: 85},
}

// GradeService assigns a letter grade to a served dish. Each grade also caps the number of
// refires the ticket may have needed. prepTime and targetTime are reported alongside the grade
// but do not affect it.
func GradeService(accuracy float64, prepTime, targetTime float64, failures int, difficulty models.GradingDifficulty) models.Grade {
	th, ok := thresholdTable[difficulty]
	if !ok {
		th = thresholdTable[models.GradingNormal]
	}

	switch {
	case accuracy >= th.s && failures == 0:
		return models.GradeS
	case accuracy >= th.a && failures <= 1:
		return models.GradeA
	case accuracy >= th.b && failures <= 2:
		return models.GradeB
	default:
		return models.GradeF
	}
}

var gradeBonus = map[models.Grade]float64{
	models.GradeS: 15,
	models.GradeA: 5,
	models.GradeB: 0,
	models.GradeF: -10,
}

// CalculateProfit returns the money earned for a served dish, never negative
func CalculateProfit(baseCost, accuracy float64, grade models.Grade, failures int) int {
	profit := baseCost * 2
	profit -= float64(failures) * 5
	if accuracy < 80 {
		profit -= math.Floor((80 - accuracy) * 0.5)
	}
	profit += gradeBonus[grade]
	return int(math.Floor(math.Max(0, profit)))
}

// GradingDifficultyFor maps the accuracy requirement setting to a threshold table
func GradingDifficultyFor(accuracyRequirement float64) models.GradingDifficulty {
	switch {
	case accuracyRequirement < 80:
		return models.GradingEasy
	case accuracyRequirement > 90:
		return models.GradingHard
	default:
		return models.GradingNormal
	}
}

var gradePoints = map[models.Grade]int{
	models.GradeS: 4,
	models.GradeA: 3,
	models.GradeB: 2,
	models.GradeF: 0,
}

// AverageGrade folds a grade histogram into a single letter, or "N/A" when it is empty.
func AverageGrade(breakdown map[models.Grade]int) string {
	points, count := 0, 0
	for grade, n := range breakdown {
		points += gradePoints[grade] * n
		count += n
	}
	if count == 0 {
		return models.NoAverageGrade
	}

	avg := float64(points) / float64(count)
	switch {
	case avg >= 3.5:
		return string(models.GradeS)
	case avg >= 2.5:
		return string(models.GradeA)
	case avg >= 1.5:
		return string(models.GradeB)
	default:
		return string(models.GradeF)
	}
}
