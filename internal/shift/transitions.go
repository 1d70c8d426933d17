package shift

import (
	"math"

	"thepass/internal/career"
	"thepass/internal/evaluation"
	"thepass/internal/models"
)

// The functions in this file mutate a State and nothing else. The machine
// calls them under its lock and owns every side effect.

func startShift(s *State) {
	s.Reputation = StartingReputation
	s.TicketsServed = 0
	s.TotalTickets = 0
	s.ServiceTime = 0
	clearTickets(s)
	resetServiceLog(s)
	s.ShiftSummary = emptySummary()
	s.CurrentPhase = models.PhaseLunch
	s.GameStatus = models.StatusPlaying
	s.ShiftPhase = models.ShiftService
}

func tickService(s *State) {
	s.ServiceTime++
	s.CurrentPhase = models.PhaseFor(s.ServiceTime)
}

// endCondition reports the status the shift should end with, if any
func endCondition(s *State) (models.GameStatus, bool) {
	if !s.Active() {
		return "", false
	}
	if s.Reputation <= 0 {
		return models.StatusFired, true
	}
	if s.ServiceTime >= ShiftLength || s.TicketsServed >= TicketQuota {
		return models.StatusSurvived, true
	}
	return "", false
}

// surviveShift closes the books on a survived shift and merges it into the career
func surviveShift(s *State) {
	stats := s.ServiceStats
	s.ShiftSummary.TotalSales = stats.TotalProfit
	s.ShiftSummary.NetProfit = stats.TotalProfit - s.ShiftSummary.WastedFoodCost
	s.ShiftSummary.ReputationGain = s.Reputation
	s.ShiftSummary.PerfectDishes = stats.GradeBreakdown[models.GradeS]
	s.ShiftSummary.DishesCooked = stats.DishesServed
	s.ShiftSummary.AverageAccuracy = stats.AverageAccuracy()

	s.Career = career.CompleteShift(s.Career, career.ShiftResult{
		EndingReputation: s.Reputation,
		NetProfit:        s.ShiftSummary.NetProfit,
		TicketsServed:    s.TicketsServed,
		DishesServed:     stats.DishesServed,
		PerfectDishes:    s.ShiftSummary.PerfectDishes,
		AverageAccuracy:  s.ShiftSummary.AverageAccuracy,
	})

	s.GameStatus = models.StatusSurvived
	s.ShiftPhase = models.ShiftPostShift
	clearTickets(s)
}

// fire ends the shift on the spot. The shift phase is left alone until Restart.
func fire(s *State) {
	s.GameStatus = models.StatusFired
	clearTickets(s)
}

func advanceShift(s *State, booking models.BookingDifficulty) {
	s.ShiftPhase = models.ShiftPreShift
	s.GameStatus = models.StatusIdle
	s.Reputation = StartingReputation
	s.TicketsServed = 0
	s.TotalTickets = 0
	s.ServiceTime = 0
	s.CurrentPhase = models.PhaseLunch
	clearTickets(s)
	resetServiceLog(s)
	s.ShiftSummary = emptySummary()
	s.BookingDifficulty = booking
}

func restart(s *State) {
	s.ShiftPhase = models.ShiftPreShift
	s.GameStatus = models.StatusIdle
	s.Reputation = StartingReputation
	s.ServiceTime = 0
	s.CurrentPhase = models.PhaseLunch
	clearTickets(s)
}

func adjustReputation(s *State, delta float64) {
	s.Reputation = math.Max(0, math.Min(100, s.Reputation+delta))
}

func resetServiceLog(s *State) {
	s.ServiceLog = []models.ServiceLogEntry{}
	s.ServiceStats = models.NewServiceStats()
}

func clearTickets(s *State) {
	s.CurrentTicket = nil
	s.CurrentDish = nil
	s.PendingTickets = []models.Ticket{}
	s.TicketFailures = 0
	s.TicketStartTime = 0
}

// enqueue appends a ticket to the FIFO. It returns true when the ticket went
// straight to the pass and needs a dish.
func enqueue(s *State, t models.Ticket) bool {
	s.TotalTickets++
	if s.CurrentTicket == nil {
		setCurrent(s, t)
		return true
	}
	s.PendingTickets = append(s.PendingTickets, t)
	return false
}

// dequeue moves the next pending ticket to the pass. It returns false when the queue is empty.
func dequeue(s *State) bool {
	if len(s.PendingTickets) == 0 {
		s.CurrentTicket = nil
		s.CurrentDish = nil
		s.TicketFailures = 0
		return false
	}
	next := s.PendingTickets[0]
	s.PendingTickets = append([]models.Ticket{}, s.PendingTickets[1:]...)
	setCurrent(s, next)
	return true
}

func setCurrent(s *State, t models.Ticket) {
	s.CurrentTicket = &t
	s.CurrentDish = nil
	s.TicketStartTime = s.ServiceTime
	s.TicketFailures = 0
}

// recordService appends a log entry, newest first, and folds it into the running stats
func recordService(s *State, entry models.ServiceLogEntry, accuracy float64) {
	s.ServiceLog = append([]models.ServiceLogEntry{entry}, s.ServiceLog...)

	stats := s.ServiceStats.Clone()
	stats.DishesServed++
	stats.TotalProfit += entry.ProfitLoss
	stats.GradeBreakdown[entry.Grade]++
	stats.AccuracyTotal += accuracy
	stats.AverageGrade = evaluation.AverageGrade(stats.GradeBreakdown)
	s.ServiceStats = stats

	s.Money += entry.ProfitLoss
	s.TicketsServed++
}

// unlockRecipe adds a recipe to the career unlocks. It returns false if it was already unlocked.
func unlockRecipe(s *State, recipeID int) bool {
	if s.Career.IsUnlocked(recipeID) {
		return false
	}
	s.Career.UnlockedRecipes = append(s.Career.UnlockedRecipes, recipeID)
	s.ShiftSummary.RecipesUnlockedThisShift = append(s.ShiftSummary.RecipesUnlockedThisShift, recipeID)
	return true
}

func wasteFood(s *State, cost int) {
	s.Money -= cost
	s.ShiftSummary.WastedFoodCost += cost
}

// validateMenu checks a menu selection against the catalog and the career unlocks
func validateMenu(ids []int, catalog *models.RecipeCatalog, stats models.CareerStats) ([]int, error) {
	seen := make(map[int]bool, len(ids))
	menu := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		menu = append(menu, id)
	}
	if len(menu) > MaxMenuSize {
		return nil, ErrMenuTooLarge
	}
	for _, id := range menu {
		recipe, ok := catalog.Recipe(id)
		if !ok {
			return nil, wrapRecipe(ErrUnknownRecipe, id)
		}
		if !stats.IsUnlocked(id) && !models.TierUnlocked(recipe.Tier, stats.CurrentMilestone) {
			return nil, wrapRecipe(ErrRecipeLocked, id)
		}
	}
	return menu, nil
}
