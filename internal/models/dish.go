package models

// Temperature represents the doneness a dish was cooked to
type Temperature string

const (
	TemperatureBlueRaw    Temperature = "Blue/Raw"
	TemperatureRare       Temperature = "Rare"
	TemperatureMediumRare Temperature = "Medium Rare"
	TemperatureMedium     Temperature = "Medium"
	TemperatureWellDone   Temperature = "Well Done"
)

// Temperatures lists every temperature in the order used for random draws.
var Temperatures = []Temperature{
	TemperatureBlueRaw,
	TemperatureRare,
	TemperatureMediumRare,
	TemperatureMedium,
	TemperatureWellDone,
}

// CookLevel represents how well the dish was executed on the stove
type CookLevel string

const (
	CookBurnt       CookLevel = "Burnt"
	CookOvercooked  CookLevel = "Overcooked"
	CookPerfect     CookLevel = "Perfect"
	CookUndercooked CookLevel = "Undercooked"
)

// FlawedCookLevels are the cook levels a flawed dish is drawn from.
var FlawedCookLevels = []CookLevel{CookBurnt, CookOvercooked, CookUndercooked}

// PlatingQuality represents how the dish was plated
type PlatingQuality string

const (
	PlatingSloppy     PlatingQuality = "Sloppy"
	PlatingAcceptable PlatingQuality = "Acceptable"
	PlatingPerfect    PlatingQuality = "Perfect"
)

// Dish is the cooked output generated for the ticket currently at the pass.
// MissingIngredients holds indices into the recipe's ingredient list.
type Dish struct {
	Temperature        Temperature    `json:"temperature"`
	CookLevel          CookLevel      `json:"cookLevel"`
	PlatingQuality     PlatingQuality `json:"platingQuality"`
	MissingIngredients []int          `json:"missingIngredients"`
}
