package model

// RecipeBody is the structured recipe payload, serialized to JSON in the
// recipes.content column. Field names match the upstream generator output.
type RecipeBody struct {
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Ingredients  map[string]Ingredient `json:"ingredients"`
	Instructions []string              `json:"instructions"`
	CookTime     string                `json:"cook_time"`
	ServingSize  int                   `json:"serving_size"`
}

// Ingredient is a single entry in a recipe's ingredient map, keyed by
// ingredient name.
type Ingredient struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Notes  string  `json:"notes,omitempty"`
}
