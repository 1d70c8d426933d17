package models

// Ticket represents a customer order waiting at the pass.
// UniqueID identifies this spawn; the same recipe can appear on many tickets.
type Ticket struct {
	UniqueID   string `json:"uniqueId"`
	Recipe     Recipe `json:"recipe"`
	Difficulty string `json:"difficulty"`
	SpawnedAt  int    `json:"spawnedAt"`
}

// NewTicket wraps a recipe in a fresh ticket
func NewTicket(id string, recipe Recipe, spawnedAt int) Ticket {
	return Ticket{
		UniqueID:   id,
		Recipe:     recipe,
		Difficulty: recipe.DifficultyLabel(),
		SpawnedAt:  spawnedAt,
	}
}
