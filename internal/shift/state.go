package shift

import (
	"thepass/internal/models"
)

const (
	// StartingReputation is the reputation at the top of every shift
	StartingReputation = 100
	// InitialMoney is the bank of a player without a save
	InitialMoney = 1000
	// ShiftLength is the service time in seconds after which the shift is survived
	ShiftLength = 300
	// TicketQuota is the number of handled tickets after which the shift is survived
	TicketQuota = 50
	// MaxMenuSize caps the number of recipes on a menu
	MaxMenuSize = 5
)

// State is a snapshot of the running session. The machine owns the live copy;
// everything handed out is a Clone.
type State struct {
	Revision          uint64                   `json:"revision"`
	Reputation        float64                  `json:"reputation"`
	Money             int                      `json:"money"`
	TicketsServed     int                      `json:"ticketsServed"`
	TotalTickets      int                      `json:"totalTickets"`
	ServiceTime       int                      `json:"serviceTime"`
	CurrentPhase      models.ServicePhase      `json:"currentPhase"`
	ShiftPhase        models.ShiftPhase        `json:"shiftPhase"`
	GameStatus        models.GameStatus        `json:"gameStatus"`
	BookingDifficulty models.BookingDifficulty `json:"bookingDifficulty"`
	SelectedMenu      []int                    `json:"selectedMenu"`

	CurrentTicket   *models.Ticket   `json:"currentTicket"`
	CurrentDish     *models.Dish     `json:"currentDish"`
	PendingTickets  []models.Ticket  `json:"pendingTickets"`
	TicketStartTime int              `json:"ticketStartTime"`
	TicketFailures  int              `json:"ticketFailures"`

	ServiceLog   []models.ServiceLogEntry `json:"serviceLog"`
	ServiceStats models.ServiceStats      `json:"serviceStats"`
	ShiftSummary models.ShiftSummary      `json:"shiftSummary"`

	Career   models.CareerStats `json:"careerStats"`
	Settings models.Settings    `json:"settings"`
}

// NewState builds the PreShift state of a session
func NewState(career models.CareerStats, settings models.Settings, money int, booking models.BookingDifficulty) State {
	return State{
		Reputation:        StartingReputation,
		Money:             money,
		CurrentPhase:      models.PhaseLunch,
		ShiftPhase:        models.ShiftPreShift,
		GameStatus:        models.StatusIdle,
		BookingDifficulty: booking,
		SelectedMenu:      []int{},
		PendingTickets:    []models.Ticket{},
		ServiceLog:        []models.ServiceLogEntry{},
		ServiceStats:      models.NewServiceStats(),
		ShiftSummary:      emptySummary(),
		Career:            career,
		Settings:          settings,
	}
}

// Active reports whether timers should be running
func (s State) Active() bool {
	return s.ShiftPhase == models.ShiftService && s.GameStatus == models.StatusPlaying
}

// PendingCount is the number of tickets waiting behind the current one
func (s State) PendingCount() int {
	return len(s.PendingTickets)
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := s
	out.SelectedMenu = append([]int{}, s.SelectedMenu...)
	out.PendingTickets = append([]models.Ticket{}, s.PendingTickets...)
	out.ServiceLog = append([]models.ServiceLogEntry{}, s.ServiceLog...)
	out.ServiceStats = s.ServiceStats.Clone()
	out.ShiftSummary.RecipesUnlockedThisShift = append([]int{}, s.ShiftSummary.RecipesUnlockedThisShift...)
	out.Career = s.Career.Clone()
	if s.CurrentTicket != nil {
		t := *s.CurrentTicket
		out.CurrentTicket = &t
	}
	if s.CurrentDish != nil {
		d := *s.CurrentDish
		d.MissingIngredients = append([]int{}, s.CurrentDish.MissingIngredients...)
		out.CurrentDish = &d
	}
	return out
}

func emptySummary() models.ShiftSummary {
	return models.ShiftSummary{RecipesUnlockedThisShift: []int{}}
}
