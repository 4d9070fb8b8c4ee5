// Package nutrition turns validated engine answers into NutritionRecords and
// rescales records to consumed quantities.
package nutrition

import (
	"strings"

	"github.com/franckalain/nutriscan/internal/models"
)

// Normalize maps a raw engine answer of either contract version onto the
// unified record. Nil nutrients become 0.
func Normalize(raw *models.RawOutput) models.NutritionRecord {
	switch {
	case raw == nil:
		return models.NutritionRecord{}
	case raw.Legacy != nil:
		return fromLegacy(raw.Legacy)
	case raw.Unified != nil:
		return fromUnified(raw.Unified)
	}
	return models.NutritionRecord{}
}

func fromLegacy(out *models.LegacyOutput) models.NutritionRecord {
	rec := models.NutritionRecord{
		Name:    strings.TrimSpace(out.Alimento),
		Portion: strings.TrimSpace(out.Porcion),
	}
	if n := out.Nutrientes; n != nil {
		rec.Energy = valueOrZero(n.Calorias)
		rec.Protein = valueOrZero(n.Proteinas)
		rec.Fats = valueOrZero(n.Grasas)
		rec.Water = valueOrZero(n.Agua)
	}
	return rec
}

func fromUnified(out *models.UnifiedOutput) models.NutritionRecord {
	return models.NutritionRecord{
		Name:    out.Name,
		Portion: out.Portion,
		Energy:  valueOrZero(out.Energy),
		Protein: valueOrZero(out.Protein),
		Fats:    valueOrZero(out.Fats),
		Water:   valueOrZero(out.Water),
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
