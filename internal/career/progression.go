// Package career owns the player's long-running progression: merging finished shifts into
// the career record, staff upgrades, and durable storage of the career and settings.
package career

import (
	"errors"
	"fmt"
	"math"

	"thepass/internal/models"
)

const (
	// TrainCost buys one skill level for a station
	TrainCost = 500
	// HireCost buys one speed level for a station
	HireCost = 200
)

var (
	ErrUnknownStation    = errors.New("unknown kitchen station")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMaxLevel          = errors.New("station already at max level")
)

// ShiftResult is what a survived shift contributes to the career
type ShiftResult struct {
	EndingReputation float64
	NetProfit        int
	TicketsServed    int
	DishesServed     int
	PerfectDishes    int
	AverageAccuracy  float64
}

// CompleteShift merges a survived shift into the career stats and returns the new record.
// The input is not modified.
func CompleteShift(stats models.CareerStats, r ShiftResult) models.CareerStats {
	out := stats.Clone()

	nudge := -2.0
	if r.EndingReputation > 50 {
		nudge = 2
	}
	out.CareerReputation = math.Max(0, math.Min(100, out.CareerReputation+nudge))
	out.CareerMoney += r.NetProfit
	out.CareerDishesServed += r.TicketsServed
	out.TotalShiftsCompleted++
	out.TotalDishesCooked += r.DishesServed
	out.TotalPerfectDishes += r.PerfectDishes
	out.CurrentMilestone = models.MilestoneFor(out.TotalShiftsCompleted)
	out.CurrentShiftNumber = out.TotalShiftsCompleted + 1

	out.BestStats.HighestReputation = math.Max(out.BestStats.HighestReputation, r.EndingReputation)
	if r.TicketsServed > out.BestStats.MostDishesServed {
		out.BestStats.MostDishesServed = r.TicketsServed
	}
	out.BestStats.BestAccuracy = math.Max(out.BestStats.BestAccuracy, r.AverageAccuracy)

	return out
}

// Train raises a station's skill by one level for TrainCost
func Train(stats models.CareerStats, station string, money int) (models.CareerStats, error) {
	return upgrade(stats, station, money, TrainCost, func(s *models.Staff) *int { return &s.Skill })
}

// Hire raises a station's speed by one level for HireCost
func Hire(stats models.CareerStats, station string, money int) (models.CareerStats, error) {
	return upgrade(stats, station, money, HireCost, func(s *models.Staff) *int { return &s.Speed })
}

func upgrade(stats models.CareerStats, station string, money, cost int, stat func(*models.Staff) *int) (models.CareerStats, error) {
	staff, ok := stats.KitchenStaff[station]
	if !ok {
		return stats, fmt.Errorf("%w: %s", ErrUnknownStation, station)
	}
	if money < cost {
		return stats, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, money)
	}
	level := stat(&staff)
	if *level >= models.MaxStaffLevel {
		return stats, fmt.Errorf("%w: %s", ErrMaxLevel, station)
	}
	*level++

	out := stats.Clone()
	out.KitchenStaff[station] = staff
	out.CareerMoney -= cost
	return out, nil
}
