package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/models"
)

// readImage loads an image file as a data URI.
func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("photo %s is empty", path)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mimeType)
	}
	return estimate.EncodeDataURI(mimeType, data), nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func printRecord(w io.Writer, rec *models.NutritionRecord) error {
	if jsonOutput {
		return printJSON(w, rec)
	}
	portion := rec.Portion
	if portion == "" {
		portion = models.DefaultPortion
	}
	fmt.Fprintf(w, "Food: %s\n", rec.Name)
	fmt.Fprintf(w, "Portion: %s\n", portion)
	fmt.Fprintf(w, "Energy: %.1f kcal\nProtein: %.1fg\nFats: %.1fg\nWater: %.1fg\n", rec.Energy, rec.Protein, rec.Fats, rec.Water)
	return nil
}

func printConsumed(w io.Writer, c models.ConsumedNutrition) error {
	if jsonOutput {
		return printJSON(w, c)
	}
	fmt.Fprintf(w, "Eaten: %vg\n", c.Grams)
	fmt.Fprintf(w, "Energy: %.1f kcal\nProtein: %.1fg\nFats: %.1fg\nWater: %.1fg\n", c.Energy, c.Protein, c.Fats, c.Water)
	return nil
}
