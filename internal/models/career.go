package models

// Milestone is the career rank earned by completing shifts
type Milestone string

const (
	MilestoneSousChef      Milestone = "Sous Chef"
	MilestoneHeadChef      Milestone = "Head Chef"
	MilestoneExecutiveChef Milestone = "Executive Chef"
	MilestoneMichelinStar  Milestone = "Michelin Star"
)

// MilestoneFor derives the rank from the number of completed shifts.
func MilestoneFor(totalShiftsCompleted int) Milestone {
	switch {
	case totalShiftsCompleted >= 15:
		return MilestoneMichelinStar
	case totalShiftsCompleted >= 10:
		return MilestoneExecutiveChef
	case totalShiftsCompleted >= 5:
		return MilestoneHeadChef
	default:
		return MilestoneSousChef
	}
}

// MaxStaffLevel caps both skill and speed of a station.
const MaxStaffLevel = 5

// Staff describes the crew working one kitchen station
type Staff struct {
	Skill int    `json:"skill"`
	Speed int    `json:"speed"`
	Name  string `json:"name,omitempty"`
}

// BestStats are running maxima across the whole career
type BestStats struct {
	HighestReputation float64 `json:"highestReputation"`
	MostDishesServed  int     `json:"mostDishesServed"`
	BestAccuracy      float64 `json:"bestAccuracy"`
}

// CareerStats is the persistent progression of the player
type CareerStats struct {
	CareerReputation     float64          `json:"careerReputation"`
	CareerMoney          int              `json:"careerMoney"`
	CareerDishesServed   int              `json:"careerDishesServed"`
	CurrentShiftNumber   int              `json:"currentShiftNumber"`
	TotalShiftsCompleted int              `json:"totalShiftsCompleted"`
	TotalDishesCooked    int              `json:"totalDishesCooked"`
	TotalPerfectDishes   int              `json:"totalPerfectDishes"`
	CurrentMilestone     Milestone        `json:"currentMilestone"`
	UnlockedRecipes      []int            `json:"unlockedRecipes"`
	KitchenStaff         map[string]Staff `json:"kitchenStaff"`
	BestStats            BestStats        `json:"bestStats"`
}

// StarterRecipes are unlocked for every new career.
var StarterRecipes = []int{1, 2, 3, 4}

// DefaultKitchenStaff returns the stations every kitchen starts with
func DefaultKitchenStaff() map[string]Staff {
	return map[string]Staff{
		"Grill": {Skill: 1, Speed: 1, Name: "Grill Station"},
		"Sauté": {Skill: 1, Speed: 1, Name: "Sauté Station"},
		"Prep":  {Skill: 1, Speed: 1, Name: "Prep Station"},
	}
}

// DefaultCareerStats returns the state of a brand new career
func DefaultCareerStats() CareerStats {
	unlocked := make([]int, len(StarterRecipes))
	copy(unlocked, StarterRecipes)
	return CareerStats{
		CurrentShiftNumber: 1,
		CurrentMilestone:   MilestoneSousChef,
		UnlockedRecipes:    unlocked,
		KitchenStaff:       DefaultKitchenStaff(),
	}
}

// Clone returns a deep copy of the career stats
func (c CareerStats) Clone() CareerStats {
	out := c
	if c.UnlockedRecipes != nil {
		out.UnlockedRecipes = make([]int, len(c.UnlockedRecipes))
		copy(out.UnlockedRecipes, c.UnlockedRecipes)
	}
	if c.KitchenStaff != nil {
		out.KitchenStaff = make(map[string]Staff, len(c.KitchenStaff))
		for k, v := range c.KitchenStaff {
			out.KitchenStaff[k] = v
		}
	}
	return out
}

// IsUnlocked reports whether a recipe id has been unlocked
func (c CareerStats) IsUnlocked(recipeID int) bool {
	for _, id := range c.UnlockedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// Station returns the staff of a station, or a level 1 crew when the station is unknown.
func (c CareerStats) Station(name string) Staff {
	s, ok := c.KitchenStaff[name]
	if !ok {
		return Staff{Skill: 1, Speed: 1}
	}
	return s
}

// AverageSkill is the mean skill across stations (1 with no stations)
func (c CareerStats) AverageSkill() float64 {
	if len(c.KitchenStaff) == 0 {
		return 1
	}
	total := 0
	for _, s := range c.KitchenStaff {
		total += levelOrOne(s.Skill)
	}
	return float64(total) / float64(len(c.KitchenStaff))
}

// AverageSpeed is the mean speed across stations (1 with no stations)
func (c CareerStats) AverageSpeed() float64 {
	if len(c.KitchenStaff) == 0 {
		return 1
	}
	total := 0
	for _, s := range c.KitchenStaff {
		total += levelOrOne(s.Speed)
	}
	return float64(total) / float64(len(c.KitchenStaff))
}

func levelOrOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
