// Package prompt builds the instructions sent to the reasoning engine for
// each estimation strategy.
package prompt

import (
	"fmt"
	"strings"
)

const defaultCuisine = "Peruvian"

// Builder renders prompts. Cuisine is the regional cuisine assumed when the
// input is ambiguous.
type Builder struct {
	Cuisine string
}

// NewBuilder returns a Builder biased toward cuisine, or Peruvian when empty.
func NewBuilder(cuisine string) *Builder {
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		cuisine = defaultCuisine
	}
	return &Builder{Cuisine: cuisine}
}

func (b *Builder) cuisine() string {
	if b == nil || b.Cuisine == "" {
		return defaultCuisine
	}
	return b.Cuisine
}

// dishFields lists the output fields of a dish estimate.
func dishFields() string {
	var sb strings.Builder
	sb.WriteString("OUTPUT FIELDS (all values per 100g of the dish):\n")
	sb.WriteString("- name: the name of the dish (string)\n")
	sb.WriteString("- energy: energy in kcal (number)\n")
	sb.WriteString("- protein: protein in grams (number)\n")
	sb.WriteString("- fats: total fats in grams (number)\n")
	sb.WriteString("- water: water content in grams (number)\n\n")
	return sb.String()
}

func degradationRules() string {
	var sb strings.Builder
	sb.WriteString("RULES:\n")
	sb.WriteString("- Always answer. If you are not sure, make a reasonable estimate.\n")
	sb.WriteString("- If a specific nutrient cannot be determined, give your best estimate or 0. Never leave a field out.\n")
	sb.WriteString("- All numbers must be plain non-negative numbers without units.\n")
	sb.WriteString("- Respond only with the JSON object described above.\n")
	return sb.String()
}

// DishFromPhoto renders the prompt that accompanies a photo of a prepared dish.
func (b *Builder) DishFromPhoto() string {
	var sb strings.Builder
	sb.WriteString("You are a nutritionist. The attached image shows a plate of food. ")
	sb.WriteString(fmt.Sprintf("It is most likely a dish from %s cuisine.\n\n", b.cuisine()))
	sb.WriteString("TASK:\n")
	sb.WriteString("1. Identify which dish it appears to be.\n")
	sb.WriteString("2. Estimate its approximate nutritional values per 100g.\n")
	sb.WriteString(fmt.Sprintf("If the image is ambiguous, prefer %s dishes.\n\n", b.cuisine()))
	sb.WriteString(dishFields())
	sb.WriteString(degradationRules())
	return sb.String()
}

// DishFromText renders the prompt for a dish given by name.
func (b *Builder) DishFromText(dishName string) string {
	dishName = strings.TrimSpace(dishName)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are a nutritionist. The following is the name of a dish: %q. ", dishName))
	sb.WriteString(fmt.Sprintf("It is most likely a dish from %s cuisine.\n\n", b.cuisine()))
	sb.WriteString("TASK:\n")
	sb.WriteString("1. Confirm the name of the dish.\n")
	sb.WriteString("2. Estimate its approximate nutritional values per 100g.\n")
	sb.WriteString(fmt.Sprintf("If the name is ambiguous, prefer %s dishes.\n", b.cuisine()))
	sb.WriteString(fmt.Sprintf("The 'name' field must be exactly %q unless that name is clearly a misnomer for another dish.\n\n", dishName))
	sb.WriteString(dishFields())
	sb.WriteString(degradationRules())
	return sb.String()
}

// LabelFromText renders the prompt that interprets OCR text read from a
// packaged-food nutrition label.
func (b *Builder) LabelFromText(ocrText string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert at reading nutrition labels. ")
	sb.WriteString("The text below was extracted by OCR from a photo of a packaged food label. ")
	sb.WriteString("Line breaks and column order may be imperfect.\n\n")

	sb.WriteString("TASK:\n")
	sb.WriteString("1. Identify the name of the food item. If the label does not show it, describe the product briefly.\n")
	sb.WriteString("2. Locate the nutrition table. If there is a 'per 100g' or 'per 100ml' column, use it and report the portion as \"100g\" or \"100ml\".\n")
	sb.WriteString("   Otherwise report the serving size exactly as written on the label, e.g. \"30g\" or \"250ml\".\n")
	sb.WriteString("3. Extract the nutritional values for that portion.\n\n")

	sb.WriteString("OUTPUT FIELDS (all values per portion):\n")
	sb.WriteString("- name: the name of the food item (string)\n")
	sb.WriteString("- portion: the serving size the values refer to (string)\n")
	sb.WriteString("- energy: energy in kcal (number); convert from kJ if only kJ is given (1 kcal = 4.184 kJ)\n")
	sb.WriteString("- protein: protein in grams (number)\n")
	sb.WriteString("- fats: total fats in grams (number)\n")
	sb.WriteString("- water: water content in grams (number). Labels rarely list water: if it is missing, estimate it as the portion mass minus the other macronutrients listed (protein, fats, carbohydrates, fibre, salt), or 0 if it cannot be estimated.\n\n")

	sb.WriteString(degradationRules())
	sb.WriteString("\nLABEL TEXT:\n")
	sb.WriteString(strings.TrimSpace(ocrText))
	sb.WriteString("\n")
	return sb.String()
}
