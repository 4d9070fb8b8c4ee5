package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuilderDefaultsCuisine(t *testing.T) {
	assert.Equal(t, "Peruvian", NewBuilder("").Cuisine)
	assert.Equal(t, "Peruvian", NewBuilder("   ").Cuisine)
	assert.Equal(t, "Thai", NewBuilder(" Thai ").Cuisine)

	var nilBuilder *Builder
	assert.Contains(t, nilBuilder.DishFromPhoto(), "Peruvian")
}

func TestPromptsDeclareAllFields(t *testing.T) {
	b := NewBuilder("Peruvian")
	prompts := map[string]string{
		"photo": b.DishFromPhoto(),
		"text":  b.DishFromText("Ají de gallina"),
		"label": b.LabelFromText("Valor energético 450 kcal"),
	}

	for name, p := range prompts {
		for _, field := range []string{"name:", "energy:", "protein:", "fats:", "water:", "kcal", "grams", "or 0"} {
			assert.Contains(t, p, field, "%s prompt", name)
		}
	}
	assert.Contains(t, prompts["label"], "portion:")
	assert.NotContains(t, prompts["photo"], "portion:")
}

func TestDishPromptsCarryCuisineBiasAndBasis(t *testing.T) {
	b := NewBuilder("Mexican")

	photo := b.DishFromPhoto()
	assert.Contains(t, photo, "prefer Mexican dishes")
	assert.Contains(t, photo, "per 100g")

	text := b.DishFromText("  tacos al pastor ")
	assert.Contains(t, text, `"tacos al pastor"`)
	assert.Contains(t, text, "misnomer")
	assert.Contains(t, text, "prefer Mexican dishes")
}

func TestLabelPrompt(t *testing.T) {
	p := NewBuilder("").LabelFromText("\n  INFORMACION NUTRICIONAL\nPor 100g  Energia 450kcal \n")

	assert.Contains(t, p, "'per 100g' or 'per 100ml' column")
	assert.Contains(t, p, "exactly as written")
	assert.Contains(t, p, "portion mass minus")
	assert.Contains(t, p, "LABEL TEXT:\nINFORMACION NUTRICIONAL\nPor 100g  Energia 450kcal\n")
}
