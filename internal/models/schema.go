package models

// Schema is the output contract handed to the reasoning engine. It mirrors the
// OpenAPI subset that structured-output engines accept.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
}

// Schema types.
const (
	TypeObject = "OBJECT"
	TypeString = "STRING"
	TypeNumber = "NUMBER"
)

// Contract versions. v1 is the nested contract with Spanish field names,
// v2 is the flat unified one.
const (
	SchemaVersionLegacy  = "nutrition.v1"
	SchemaVersionUnified = "nutrition.v2"
	SchemaVersion        = SchemaVersionUnified
)

func nutrientField(description string) *Schema {
	zero := 0.0
	return &Schema{Type: TypeNumber, Description: description, Minimum: &zero}
}

func nutrientProperties(basis string) map[string]*Schema {
	return map[string]*Schema{
		"name":    {Type: TypeString, Description: "The name of the food item or dish."},
		"energy":  nutrientField("Energy in kcal " + basis + "."),
		"protein": nutrientField("Protein in grams " + basis + "."),
		"fats":    nutrientField("Total fats in grams " + basis + "."),
		"water":   nutrientField("Water content in grams " + basis + "."),
	}
}

var nutrientKeys = []string{"name", "energy", "protein", "fats", "water"}

// DishSchema is the contract for dish estimates, always per 100g.
func DishSchema() *Schema {
	return &Schema{
		Type:        TypeObject,
		Description: "Estimated nutrition of a dish per 100g.",
		Properties:  nutrientProperties("per 100g"),
		Required:    append([]string(nil), nutrientKeys...),
	}
}

// LabelSchema is the contract for label extraction, where the portion is
// read from the label and is mandatory.
func LabelSchema() *Schema {
	props := nutrientProperties("per portion")
	props["portion"] = &Schema{
		Type:        TypeString,
		Description: `The serving size the values refer to, e.g. "100g", "30g" or "250ml".`,
	}
	return &Schema{
		Type:        TypeObject,
		Description: "Nutrition facts read from a packaged food label.",
		Properties:  props,
		Required:    append([]string{"portion"}, nutrientKeys...),
	}
}

// UnifiedSchema is the superset contract: a label shape with optional portion.
func UnifiedSchema() *Schema {
	s := LabelSchema()
	s.Description = "Nutrition of a food item per portion (per 100g when portion is omitted)."
	s.Required = append([]string(nil), nutrientKeys...)
	return s
}
