package models

// Grade is the letter grade given to a served dish
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeF Grade = "F"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeS, GradeA, GradeB, GradeF}

// NoAverageGrade is reported before any dish has been graded in a shift.
const NoAverageGrade = "N/A"

// GradingDifficulty selects the threshold table used by the grading engine
type GradingDifficulty string

const (
	GradingEasy   GradingDifficulty = "easy"
	GradingNormal GradingDifficulty = "normal"
	GradingHard   GradingDifficulty = "hard"
)

// EvaluationResult is the outcome of inspecting a dish against its recipe.
// It is never stored; only the grade and profit derived from it reach the service log.
type EvaluationResult struct {
	Score               int      `json:"score"`
	NormalizedScore     float64  `json:"normalizedScore"`
	Issues              []string `json:"issues"`
	IsPerfect           bool     `json:"isPerfect"`
	IsAcceptable        bool     `json:"isAcceptable"`
	IsFlawed            bool     `json:"isFlawed"`
	AccuracyRequirement float64  `json:"accuracyRequirement"`
}

// ServiceLogEntry records one dish sent out during service
type ServiceLogEntry struct {
	ID         string `json:"id"`
	DishName   string `json:"dishName"`
	Grade      Grade  `json:"grade"`
	ProfitLoss int    `json:"profitLoss"`
	Note       string `json:"note"`
	Timestamp  int    `json:"timestamp"`
}

// ServiceStats are the running statistics of the current service
type ServiceStats struct {
	DishesServed   int           `json:"dishesServed"`
	TotalProfit    int           `json:"totalProfit"`
	AverageGrade   string        `json:"averageGrade"`
	GradeBreakdown map[Grade]int `json:"gradeBreakdown"`
	AccuracyTotal  float64       `json:"accuracyTotal"`
}

// NewServiceStats returns empty stats with every grade bucket present
func NewServiceStats() ServiceStats {
	return ServiceStats{
		AverageGrade:   NoAverageGrade,
		GradeBreakdown: map[Grade]int{GradeS: 0, GradeA: 0, GradeB: 0, GradeF: 0},
	}
}

// AverageAccuracy returns the mean accuracy of dishes served so far
func (s ServiceStats) AverageAccuracy() float64 {
	if s.DishesServed == 0 {
		return 0
	}
	return s.AccuracyTotal / float64(s.DishesServed)
}

// Clone returns a copy that shares no maps with s
func (s ServiceStats) Clone() ServiceStats {
	out := s
	out.GradeBreakdown = make(map[Grade]int, len(s.GradeBreakdown))
	for k, v := range s.GradeBreakdown {
		out.GradeBreakdown[k] = v
	}
	return out
}

// ShiftSummary is the post-shift report
type ShiftSummary struct {
	TotalSales               int     `json:"totalSales"`
	WastedFoodCost           int     `json:"wastedFoodCost"`
	NetProfit                int     `json:"netProfit"`
	ReputationGain           float64 `json:"reputationGain"`
	PerfectDishes            int     `json:"perfectDishes"`
	DishesCooked             int     `json:"dishesCooked"`
	RecipesUnlockedThisShift []int   `json:"recipesUnlockedThisShift"`
	AverageAccuracy          float64 `json:"averageAccuracy"`
}
