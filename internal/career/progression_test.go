package career

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thepass/internal/models"
)

func TestCompleteShift(t *testing.T) {
	stats := models.DefaultCareerStats()
	stats.CareerReputation = 99
	stats.TotalShiftsCompleted = 4

	out := CompleteShift(stats, ShiftResult{
		EndingReputation: 80,
		NetProfit:        320,
		TicketsServed:    22,
		DishesServed:     20,
		PerfectDishes:    6,
		AverageAccuracy:  81.5,
	})

	assert.Equal(t, 100.0, out.CareerReputation, "career reputation is clamped at 100")
	assert.Equal(t, 320, out.CareerMoney)
	assert.Equal(t, 22, out.CareerDishesServed)
	assert.Equal(t, 5, out.TotalShiftsCompleted)
	assert.Equal(t, 6, out.CurrentShiftNumber)
	assert.Equal(t, 20, out.TotalDishesCooked)
	assert.Equal(t, 6, out.TotalPerfectDishes)
	assert.Equal(t, models.MilestoneHeadChef, out.CurrentMilestone)
	assert.Equal(t, 80.0, out.BestStats.HighestReputation)
	assert.Equal(t, 22, out.BestStats.MostDishesServed)
	assert.Equal(t, 81.5, out.BestStats.BestAccuracy)

	// input untouched
	assert.Equal(t, 4, stats.TotalShiftsCompleted)
}

func TestCompleteShiftPoorReputation(t *testing.T) {
	stats := models.DefaultCareerStats()
	stats.CareerReputation = 1
	stats.BestStats = models.BestStats{HighestReputation: 90, MostDishesServed: 40, BestAccuracy: 95}

	out := CompleteShift(stats, ShiftResult{EndingReputation: 50, NetProfit: -40, TicketsServed: 10})

	assert.Equal(t, 0.0, out.CareerReputation)
	assert.Equal(t, -40, out.CareerMoney)
	assert.Equal(t, models.BestStats{HighestReputation: 90, MostDishesServed: 40, BestAccuracy: 95}, out.BestStats)
}

func TestTrainAndHire(t *testing.T) {
	stats := models.DefaultCareerStats()
	stats.CareerMoney = 1000

	trained, err := Train(stats, "Grill", 600)
	require.NoError(t, err)
	assert.Equal(t, 2, trained.KitchenStaff["Grill"].Skill)
	assert.Equal(t, 500, trained.CareerMoney)
	assert.Equal(t, 1, stats.KitchenStaff["Grill"].Skill)

	hired, err := Hire(trained, "Prep", 200)
	require.NoError(t, err)
	assert.Equal(t, 2, hired.KitchenStaff["Prep"].Speed)
	assert.Equal(t, 300, hired.CareerMoney)
}

func TestUpgradeRejections(t *testing.T) {
	stats := models.DefaultCareerStats()

	_, err := Train(stats, "Pastry", 10000)
	assert.True(t, errors.Is(err, ErrUnknownStation))

	_, err = Train(stats, "Grill", 499)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))

	stats.KitchenStaff["Sauté"] = models.Staff{Skill: 5, Speed: 5, Name: "Sauté Station"}
	_, err = Train(stats, "Sauté", 10000)
	assert.True(t, errors.Is(err, ErrMaxLevel))
	_, err = Hire(stats, "Sauté", 10000)
	assert.True(t, errors.Is(err, ErrMaxLevel))
}
