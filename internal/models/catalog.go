package models

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultMenu is served when the player has not picked a menu.
var DefaultMenu = []int{1, 2, 3, 4, 5, 6, 7}

// RecipeCatalog is the read-only registry of recipes, indexed by id and tier
type RecipeCatalog struct {
	recipes map[int]Recipe
	tiers   map[RecipeTier][]int
	mu      sync.RWMutex
}

// NewRecipeCatalog creates a catalog loaded with the built-in recipes
func NewRecipeCatalog() *RecipeCatalog {
	c, err := newCatalog(builtinRecipes())
	if err != nil {
		// the built-in table is static; a failure here is a programming error
		panic(err)
	}
	return c
}

// LoadRecipeCatalog builds a catalog from a YAML document of the form
//
//	recipes:
//	  - id: 1
//	    name: Caesar Salad
//	    tier: simple
//	    ...
func LoadRecipeCatalog(r io.Reader) (*RecipeCatalog, error) {
	var doc struct {
		Recipes []Recipe `yaml:"recipes"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode recipe catalog: %w", err)
	}
	return newCatalog(doc.Recipes)
}

func newCatalog(recipes []Recipe) (*RecipeCatalog, error) {
	c := &RecipeCatalog{
		recipes: make(map[int]Recipe, len(recipes)),
		tiers:   make(map[RecipeTier][]int),
	}
	for _, r := range recipes {
		if err := ValidateRecipe(&r); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", r.ID, err)
		}
		if _, exists := c.recipes[r.ID]; exists {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		c.recipes[r.ID] = r
		c.tiers[r.Tier] = append(c.tiers[r.Tier], r.ID)
	}
	return c, nil
}

// ValidateRecipe validates a recipe definition
func ValidateRecipe(r *Recipe) error {
	if r.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	if r.BaseCost < 0 {
		return fmt.Errorf("recipe base cost must not be negative")
	}
	if r.PrepTime < 0 {
		return fmt.Errorf("recipe prep time must not be negative")
	}
	switch r.Tier {
	case TierSimple, TierMedium, TierComplex, TierFrench:
	default:
		return fmt.Errorf("unknown recipe tier %q", r.Tier)
	}
	return nil
}

// Recipe looks a recipe up by id
func (c *RecipeCatalog) Recipe(id int) (Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recipes[id]
	return r, ok
}

// ByTier returns the recipes of a tier in catalog order; unknown tiers yield an empty list
func (c *RecipeCatalog) ByTier(tier RecipeTier) []Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.tiers[tier]
	out := make([]Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.recipes[id])
	}
	return out
}

// All returns every recipe sorted by id
func (c *RecipeCatalog) All() []Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func builtinRecipes() []Recipe {
	return []Recipe{
		// simple
		{ID: 1, Name: "Caesar Salad", Tier: TierSimple, Ingredients: []string{"romaine", "parmesan", "croutons"},
			PlatingDescription: "Crisp romaine, shaved parmesan, garlic croutons", BaseRepValue: 5, BaseCost: 15},
		{ID: 2, Name: "Tomato Soup", Tier: TierSimple, Ingredients: []string{"tomato", "basil", "bread"},
			PlatingDescription: "Rich tomato bisque, fresh basil, crusty bread", BaseRepValue: 5, BaseCost: 12},
		{ID: 3, Name: "Caprese Salad", Tier: TierSimple, Ingredients: []string{"tomato", "mozzarella", "basil"},
			PlatingDescription: "Fresh mozzarella, heirloom tomatoes, basil glaze", BaseRepValue: 6, BaseCost: 16},
		{ID: 4, Name: "Deviled Eggs", Tier: TierSimple, Ingredients: []string{"egg", "chives", "paprika"},
			PlatingDescription: "Whipped yolk, chives, smoked paprika dust", BaseRepValue: 4, BaseCost: 10},
		{ID: 5, Name: "Bruschetta", Tier: TierSimple, Ingredients: []string{"ciabatta", "tomato", "garlic"},
			PlatingDescription: "Grilled ciabatta, garlic rub, tomato concasse", BaseRepValue: 5, BaseCost: 14},
		{ID: 6, Name: "House Fries", Tier: TierSimple, Ingredients: []string{"potato", "sea salt", "garlic"},
			PlatingDescription: "Hand-cut potatoes, sea salt, garlic aioli", BaseRepValue: 4, BaseCost: 9},
		{ID: 7, Name: "Fruit Tart", Tier: TierSimple, Ingredients: []string{"pastry", "strawberry", "kiwi"},
			PlatingDescription: "Pastry cream, seasonal berries, apricot glaze", BaseRepValue: 6, BaseCost: 12},

		// french bistro specials
		{ID: 10, Name: "Duck Confit", Tier: TierFrench, Ingredients: []string{"Duck Legs", "Garlic", "Thyme", "Salt", "Fat"},
			PlatingDescription: "Tender duck legs confit in rich fat", BaseRepValue: 15, BaseCost: 85, PrepTime: 180,
			FailurePoints: []string{"Undercooked", "Tough", "Burnt"}},
		{ID: 11, Name: "Beef Bourguignon", Tier: TierFrench, Ingredients: []string{"Beef Chuck", "Red Wine", "Pearl Onions", "Mushrooms", "Bacon"},
			PlatingDescription: "Braised beef in burgundy wine sauce", BaseRepValue: 16, BaseCost: 90, PrepTime: 200,
			FailurePoints: []string{"Tough", "Bland", "Overcooked"}},
		{ID: 12, Name: "Coq au Vin", Tier: TierFrench, Ingredients: []string{"Chicken", "Red Wine", "Mushrooms", "Pearl Onions", "Bacon"},
			PlatingDescription: "Chicken braised in red wine", BaseRepValue: 14, BaseCost: 80, PrepTime: 190,
			FailurePoints: []string{"Dry", "Burnt", "Undercooked"}},
		{ID: 13, Name: "Bouillabaisse", Tier: TierFrench, Ingredients: []string{"Mixed Fish", "Saffron", "Fennel", "Orange Zest", "Garlic"},
			PlatingDescription: "Provençal fish stew with saffron", BaseRepValue: 18, BaseCost: 95, PrepTime: 210,
			FailurePoints: []string{"Overcooked Fish", "Bland", "Burnt"}},
		{ID: 14, Name: "Soufflé", Tier: TierFrench, Ingredients: []string{"Eggs", "Butter", "Flour", "Cheese", "Milk"},
			PlatingDescription: "Light and airy cheese soufflé", BaseRepValue: 12, BaseCost: 70, PrepTime: 150,
			FailurePoints: []string{"Deflated", "Burnt", "Undercooked"}},

		// medium
		{ID: 100, Name: "French Onion Soup", Tier: TierMedium, Ingredients: []string{"onion", "gruyere", "baguette"},
			PlatingDescription: "Caramelized onions, gruyere, toasted baguette", BaseRepValue: 8, BaseCost: 18},
		{ID: 101, Name: "Mushroom Risotto", Tier: TierMedium, Ingredients: []string{"arborio", "parmesan", "herbs", "porcini"},
			PlatingDescription: "Creamy arborio rice, parmesan, herbs, porcini", BaseRepValue: 10, BaseCost: 24},
		{ID: 102, Name: "Grilled Salmon", Tier: TierMedium, Ingredients: []string{"salmon", "fingerlings", "asparagus", "lemon"},
			PlatingDescription: "Atlantic salmon, fingerling potatoes, asparagus", BaseRepValue: 12, BaseCost: 28},
		{ID: 103, Name: "Carbonara", Tier: TierMedium, Ingredients: []string{"spaghetti", "egg yolk", "guanciale", "pecorino"},
			PlatingDescription: "Spaghetti, guanciale, pecorino, egg yolk", BaseRepValue: 11, BaseCost: 22},
		{ID: 104, Name: "Bistro Burger", Tier: TierMedium, Ingredients: []string{"wagyu", "brioche", "cheddar", "bacon"},
			PlatingDescription: "Wagyu blend, brioche bun, aged cheddar, bacon jam", BaseRepValue: 10, BaseCost: 20},
		{ID: 105, Name: "Steak Frites", Tier: TierMedium, Ingredients: []string{"hanger steak", "fries", "herb butter", "parsley"},
			PlatingDescription: "Hanger steak, shoestring fries, herb butter", BaseRepValue: 13, BaseCost: 30},
		{ID: 106, Name: "Spicy Tuna Roll", Tier: TierMedium, Ingredients: []string{"sushi rice", "tuna", "chili", "cucumber"},
			PlatingDescription: "Sushi rice, maguro, spicy mayo, cucumber", BaseRepValue: 12, BaseCost: 25},

		// complex
		{ID: 200, Name: "Beef Wellington", Tier: TierComplex, Ingredients: []string{"tenderloin", "duxelles", "puff pastry", "thyme"},
			PlatingDescription: "Tenderloin, duxelles, puff pastry, thyme jus", BaseRepValue: 18, BaseCost: 55},
		{ID: 201, Name: "Pan Seared Scallops", Tier: TierComplex, Ingredients: []string{"scallops", "microgreens", "lemon", "butter", "champagne"},
			PlatingDescription: "Diver scallops, microgreens, champagne beurre blanc", BaseRepValue: 16, BaseCost: 42},
		{ID: 202, Name: "Lobster Thermidor", Tier: TierComplex, Ingredients: []string{"lobster", "gruyere", "tarragon", "crust", "cream"},
			PlatingDescription: "Maine lobster, gruyere cream, tarragon, crust", BaseRepValue: 20, BaseCost: 60},
		{ID: 203, Name: "Paella Valenciana", Tier: TierComplex, Ingredients: []string{"bomba rice", "shrimp", "chicken", "peppers", "lemon"},
			PlatingDescription: "Saffron rice, shrimp, chicken, peppers, socarrat", BaseRepValue: 18, BaseCost: 45},
		{ID: 204, Name: "Osso Buco", Tier: TierComplex, Ingredients: []string{"veal shank", "carrot", "tomato", "red wine", "gremolata"},
			PlatingDescription: "Braised veal shank, gremolata, polenta", BaseRepValue: 19, BaseCost: 50},
		{ID: 205, Name: "Grand Soufflé", Tier: TierComplex, Ingredients: []string{"egg", "dark chocolate", "creme anglaise", "raspberry", "sugar"},
			PlatingDescription: "Dark chocolate, creme anglaise, raspberry, sugar dust", BaseRepValue: 25, BaseCost: 35},
	}
}
