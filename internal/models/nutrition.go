package models

// DefaultPortion is the serving basis assumed when a record carries no portion.
const DefaultPortion = "100g"

// NutritionRecord is the normalized result of every estimation strategy.
// Nutrient values are amounts within one Portion.
type NutritionRecord struct {
	Name    string `json:"name"`
	Portion string `json:"portion,omitempty"` // empty means per 100g

	Energy  float64 `json:"energy"`  // kcal
	Protein float64 `json:"protein"` // grams
	Fats    float64 `json:"fats"`    // grams
	Water   float64 `json:"water"`   // grams
}

// ConsumedNutrition is a NutritionRecord rescaled to the grams actually eaten.
// It is computed on demand and never stored.
type ConsumedNutrition struct {
	Grams float64 `json:"grams"`

	Energy  float64 `json:"energy"`
	Protein float64 `json:"protein"`
	Fats    float64 `json:"fats"`
	Water   float64 `json:"water"`
}
