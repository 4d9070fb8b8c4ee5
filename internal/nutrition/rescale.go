package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/franckalain/nutriscan/internal/models"
)

// ErrInvalidQuantity is returned when the consumed quantity is not a finite
// positive number of grams.
var ErrInvalidQuantity = errors.New("consumed quantity must be a finite number of grams greater than zero")

const defaultPortionGrams = 100.0

// BasePortionGrams returns the magnitude of the portion descriptor in grams
// (or millilitres). The first run of digits followed by a g or ml unit wins
// ("1 taza (240 ml)" -> 240); without a unit the first run of digits is used
// ("250g" -> 250, "1 package" -> 1). Absent, digit-less or zero portions
// count as 100.
func BasePortionGrams(portion string) float64 {
	first := ""
	for i := 0; i < len(portion); {
		if !isDigit(portion[i]) {
			i++
			continue
		}
		start := i
		for i < len(portion) && isDigit(portion[i]) {
			i++
		}
		run := portion[start:i]
		if hasMassUnit(portion[i:]) {
			return parsePortion(run)
		}
		if first == "" {
			first = run
		}
	}
	if first == "" {
		return defaultPortionGrams
	}
	return parsePortion(first)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

var massUnits = map[string]bool{
	"g": true, "gr": true, "grs": true, "gram": true, "grams": true, "gramo": true, "gramos": true,
	"ml": true, "mls": true,
}

// hasMassUnit reports whether rest starts, after optional spaces, with a gram
// or millilitre unit word.
func hasMassUnit(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	end := 0
	for end < len(rest) && isLetter(rest[end]) {
		end++
	}
	return massUnits[strings.ToLower(rest[:end])]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parsePortion(digits string) float64 {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n == 0 {
		return defaultPortionGrams
	}
	return float64(n)
}

// ValidateQuantity checks that grams is a finite number greater than zero.
func ValidateQuantity(grams float64) error {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidQuantity, grams)
	}
	return nil
}

// Rescale converts a record's per-portion nutrients to the amounts contained
// in consumedGrams. Values are not rounded.
func Rescale(rec models.NutritionRecord, consumedGrams float64) (models.ConsumedNutrition, error) {
	if err := ValidateQuantity(consumedGrams); err != nil {
		return models.ConsumedNutrition{}, err
	}

	multiplier := consumedGrams / BasePortionGrams(rec.Portion)

	return models.ConsumedNutrition{
		Grams:   consumedGrams,
		Energy:  rec.Energy * multiplier,
		Protein: rec.Protein * multiplier,
		Fats:    rec.Fats * multiplier,
		Water:   rec.Water * multiplier,
	}, nil
}
