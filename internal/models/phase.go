package models

// ServicePhase is the rush level of the dining room, derived from elapsed service time
type ServicePhase string

const (
	PhaseLunch      ServicePhase = "Lunch Service"
	PhaseMid        ServicePhase = "Mid Service"
	PhaseDinnerRush ServicePhase = "Dinner Rush"
)

// PhaseFor derives the service phase from seconds elapsed in service
func PhaseFor(serviceTime int) ServicePhase {
	switch {
	case serviceTime <= 100:
		return PhaseLunch
	case serviceTime <= 200:
		return PhaseMid
	default:
		return PhaseDinnerRush
	}
}

// ShiftPhase is the explicit stage of a shift
type ShiftPhase string

const (
	ShiftPreShift  ShiftPhase = "PreShift"
	ShiftService   ShiftPhase = "Service"
	ShiftPostShift ShiftPhase = "PostShift"
)

// GameStatus represents the status of the current session
type GameStatus string

const (
	StatusIdle     GameStatus = "idle"
	StatusPlaying  GameStatus = "playing"
	StatusPaused   GameStatus = "paused"
	StatusFired    GameStatus = "fired"
	StatusSurvived GameStatus = "survived"
)

// BookingDifficulty is how busy the restaurant is booked for a shift
type BookingDifficulty string

const (
	BookingEasy   BookingDifficulty = "Easy"
	BookingMedium BookingDifficulty = "Medium"
	BookingHard   BookingDifficulty = "Hard"
)

// BookingDifficulties lists the difficulties a new shift is drawn from.
var BookingDifficulties = []BookingDifficulty{BookingEasy, BookingMedium, BookingHard}
