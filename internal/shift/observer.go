package shift

import "thepass/internal/models"

// Observer receives service events. Hooks run after the machine lock is released,
// on the goroutine that caused the event, and must not call back into the machine.
type Observer interface {
	TicketSpawned(ticket models.Ticket, pending int)
	DishServed(entry models.ServiceLogEntry, recipe models.Recipe, prepSeconds, accuracy float64)
	DishRejected(recipe models.Recipe, correct bool)
	ShiftEnded(status models.GameStatus, summary models.ShiftSummary)
}
