package shift

import (
	"errors"
	"fmt"

	"thepass/internal/career"
)

var (
	// ErrNotInService is returned when an action needs a running service
	ErrNotInService = errors.New("no service in progress")
	// ErrNoActiveTicket is returned when there is no dish at the pass to judge
	ErrNoActiveTicket = errors.New("no ticket at the pass")
	// ErrWrongPhase is returned when an action is not allowed in the current shift phase
	ErrWrongPhase = errors.New("action not allowed in this shift phase")
	// ErrMenuTooLarge is returned when more than MaxMenuSize recipes are selected
	ErrMenuTooLarge = errors.New("menu holds at most 5 recipes")
	// ErrUnknownRecipe is returned for recipe ids missing from the catalog
	ErrUnknownRecipe = errors.New("unknown recipe")
	// ErrRecipeLocked is returned when a recipe is not yet available to the player
	ErrRecipeLocked = errors.New("recipe is locked")
	// ErrUnknownStation is returned when upgrading a station the kitchen does not have
	ErrUnknownStation = career.ErrUnknownStation
	// ErrInsufficientFunds is returned when an upgrade costs more than the player has
	ErrInsufficientFunds = career.ErrInsufficientFunds
	// ErrMaxLevel is returned when a station stat is already at the cap
	ErrMaxLevel = career.ErrMaxLevel
	// ErrSaveNotCleared is returned when the saved career could not be deleted
	ErrSaveNotCleared = errors.New("saved career could not be cleared")
)

func wrapRecipe(err error, id int) error {
	return fmt.Errorf("%w: %d", err, id)
}

// errStaleTick aborts a timer callback that lost a race with a phase change
var errStaleTick = errors.New("stale timer tick")
