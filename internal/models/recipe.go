package models

// DefaultPrepTime is the target prep time in seconds for recipes that do not declare one.
const DefaultPrepTime = 20

// RecipeTier groups recipes by complexity; tiers unlock with career milestones.
type RecipeTier string

const (
	TierSimple  RecipeTier = "simple"
	TierMedium  RecipeTier = "medium"
	TierComplex RecipeTier = "complex"
	TierFrench  RecipeTier = "french"
)

// Recipe represents a dish definition in the catalog. Recipes are never mutated after load.
type Recipe struct {
	ID                 int        `json:"id" yaml:"id"`
	Name               string     `json:"name" yaml:"name"`
	Ingredients        []string   `json:"ingredients" yaml:"ingredients"`
	PlatingDescription string     `json:"platingDescription" yaml:"plating_description"`
	BaseCost           float64    `json:"baseCost" yaml:"base_cost"`
	BaseRepValue       float64    `json:"baseRepValue" yaml:"base_rep_value"`
	PrepTime           int        `json:"prepTime,omitempty" yaml:"prep_time"`
	Tier               RecipeTier `json:"tier" yaml:"tier"`
	FailurePoints      []string   `json:"failurePoints,omitempty" yaml:"failure_points"`
}

// EffectivePrepTime returns the prep time in seconds, falling back to DefaultPrepTime
func (r Recipe) EffectivePrepTime() int {
	if r.PrepTime <= 0 {
		return DefaultPrepTime
	}
	return r.PrepTime
}

// DifficultyLabel is the label printed on a ticket for this recipe
func (r Recipe) DifficultyLabel() string {
	switch r.Tier {
	case TierComplex, TierFrench:
		return "Complex"
	default:
		return "Normal"
	}
}

// TierUnlocked reports whether recipes of the tier may be put on the menu at the given milestone.
func TierUnlocked(tier RecipeTier, milestone Milestone) bool {
	switch tier {
	case TierSimple:
		return true
	case TierMedium:
		return milestone != MilestoneSousChef
	case TierComplex, TierFrench:
		return milestone == MilestoneExecutiveChef || milestone == MilestoneMichelinStar
	default:
		return false
	}
}
