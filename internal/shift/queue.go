package shift

import (
	"time"

	"github.com/google/uuid"

	"thepass/internal/kitchen"
	"thepass/internal/models"
)

const (
	lunchSpawnMillis    = 8000.0
	midSpawnMillis      = 5000.0
	rushSpawnMillis     = 3000.0
	minSpawnInterval    = 2000 * time.Millisecond
	speedSpawnReduction = 0.05
)

// SpawnInterval is the time between two tickets. The dining room fills faster as service
// goes on and on busier bookings; quicker crews pull tickets sooner.
func SpawnInterval(phase models.ServicePhase, booking models.BookingDifficulty, averageSpeed float64) time.Duration {
	ms := lunchSpawnMillis
	switch phase {
	case models.PhaseMid:
		ms = midSpawnMillis
	case models.PhaseDinnerRush:
		ms = rushSpawnMillis
	}

	switch booking {
	case models.BookingEasy:
		ms *= 1.2
	case models.BookingHard:
		ms *= 0.8
	}

	ms *= 1 - (averageSpeed-1)*speedSpawnReduction

	d := time.Duration(ms * float64(time.Millisecond))
	if d < minSpawnInterval {
		return minSpawnInterval
	}
	return d
}

// pickRecipe draws a recipe from the menu, or from the default menu when none was chosen.
func pickRecipe(rng kitchen.Random, catalog *models.RecipeCatalog, menu []int) (models.Recipe, bool) {
	active := menu
	if len(active) == 0 {
		active = models.DefaultMenu
	}
	return catalog.Recipe(active[rng.Intn(len(active))])
}

func newTicketID() string {
	return uuid.NewString()
}
