// Package events relays service events to a message bus so other services can follow a shift.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"thepass/internal/models"
)

const (
	TypeTicketSpawned = "ticket.spawned"
	TypeDishServed    = "dish.served"
	TypeDishRejected  = "dish.rejected"
	TypeShiftEnded    = "shift.ended"

	DefaultSubjectPrefix = "thepass"
	publishTimeout       = 2 * time.Second
)

// Event is the envelope of every relayed message
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// TicketPayload is carried by ticket.spawned
type TicketPayload struct {
	Ticket  models.Ticket `json:"ticket"`
	Pending int           `json:"pending"`
}

// ServedPayload is carried by dish.served
type ServedPayload struct {
	Entry       models.ServiceLogEntry `json:"entry"`
	RecipeID    int                    `json:"recipeId"`
	PrepSeconds float64                `json:"prepSeconds"`
	Accuracy    float64                `json:"accuracy"`
}

// RejectedPayload is carried by dish.rejected
type RejectedPayload struct {
	RecipeID int    `json:"recipeId"`
	DishName string `json:"dishName"`
	Correct  bool   `json:"correct"`
}

// ShiftPayload is carried by shift.ended
type ShiftPayload struct {
	Status  models.GameStatus   `json:"status"`
	Summary models.ShiftSummary `json:"summary"`
}

// Relay publishes shift.Observer events as JSON on "<prefix>.<type>" subjects.
// Publish failures are logged and dropped.
type Relay struct {
	pub    Publisher
	prefix string
	now    func() time.Time
}

// NewRelay creates a relay publishing under prefix
func NewRelay(pub Publisher, prefix string) *Relay {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Relay{pub: pub, prefix: prefix, now: time.Now}
}

// Subject returns the subject an event type is published on
func (r *Relay) Subject(eventType string) string {
	return r.prefix + "." + eventType
}

func (r *Relay) TicketSpawned(ticket models.Ticket, pending int) {
	r.emit(TypeTicketSpawned, TicketPayload{Ticket: ticket, Pending: pending})
}

func (r *Relay) DishServed(entry models.ServiceLogEntry, recipe models.Recipe, prepSeconds, accuracy float64) {
	r.emit(TypeDishServed, ServedPayload{Entry: entry, RecipeID: recipe.ID, PrepSeconds: prepSeconds, Accuracy: accuracy})
}

func (r *Relay) DishRejected(recipe models.Recipe, correct bool) {
	r.emit(TypeDishRejected, RejectedPayload{RecipeID: recipe.ID, DishName: recipe.Name, Correct: correct})
}

func (r *Relay) ShiftEnded(status models.GameStatus, summary models.ShiftSummary) {
	r.emit(TypeShiftEnded, ShiftPayload{Status: status, Summary: summary})
}

func (r *Relay) emit(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, OccurredAt: r.now().UTC(), Payload: payload})
	if err != nil {
		log.Printf("events: failed to encode %s: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.pub.Publish(ctx, r.Subject(eventType), data); err != nil {
		log.Printf("events: publish %s failed: %v", eventType, err)
	}
}
