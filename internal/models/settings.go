package models

import "fmt"

// Settings holds user preferences. Audio and display fields are stored for the client only.
type Settings struct {
	MasterVolume        int     `json:"masterVolume"`
	SizzleSounds        bool    `json:"sizzleSounds"`
	TicketPrinter       bool    `json:"ticketPrinter"`
	KitchenClatter      bool    `json:"kitchenClatter"`
	OrderCompleteDing   bool    `json:"orderCompleteDing"`
	VisualEffects       bool    `json:"visualEffects"`
	PrepTimeMultiplier  float64 `json:"prepTimeMultiplier"`
	AccuracyRequirement float64 `json:"accuracyRequirement"`
	UIScale             string  `json:"uiScale"`
	ColorBlindMode      bool    `json:"colorBlindMode"`
}

// DefaultSettings returns the preferences of a fresh install
func DefaultSettings() Settings {
	return Settings{
		MasterVolume:        100,
		SizzleSounds:        true,
		TicketPrinter:       true,
		KitchenClatter:      true,
		OrderCompleteDing:   true,
		VisualEffects:       true,
		PrepTimeMultiplier:  1.0,
		AccuracyRequirement: 80,
		UIScale:             "normal",
		ColorBlindMode:      false,
	}
}

// ValidateSettings validates user supplied settings
func ValidateSettings(s *Settings) error {
	if s.MasterVolume < 0 || s.MasterVolume > 100 {
		return fmt.Errorf("master volume must be between 0 and 100")
	}
	if s.PrepTimeMultiplier <= 0 {
		return fmt.Errorf("prep time multiplier must be greater than 0")
	}
	if s.AccuracyRequirement < 0 || s.AccuracyRequirement > 100 {
		return fmt.Errorf("accuracy requirement must be between 0 and 100")
	}
	switch s.UIScale {
	case "small", "normal", "large":
	default:
		return fmt.Errorf("unknown ui scale %q", s.UIScale)
	}
	return nil
}
