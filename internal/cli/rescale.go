package cli

import (
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/nutrition"
	"github.com/spf13/cobra"
)

var (
	rescaleRecord models.NutritionRecord
	rescaleGrams  float64
)

var rescaleCmd = &cobra.Command{
	Use:   "rescale",
	Short: "Rescale a nutrition record to the grams eaten",
	Example: "  nutri rescale --portion 30g --energy 132 --protein 2.7 --fats 4.1 --grams 45\n" +
		"  nutri rescale --energy 150 --protein 12 --fats 7.5 --water 62 --grams 250",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		consumed, err := nutrition.Rescale(rescaleRecord, rescaleGrams)
		if err != nil {
			return err
		}
		return printConsumed(cmd.OutOrStdout(), consumed)
	},
}

func init() {
	f := rescaleCmd.Flags()
	f.StringVar(&rescaleRecord.Name, "name", "", "Food name")
	f.StringVar(&rescaleRecord.Portion, "portion", "", "Portion the values refer to (default "+models.DefaultPortion+")")
	f.Float64Var(&rescaleRecord.Energy, "energy", 0, "Energy per portion (kcal)")
	f.Float64Var(&rescaleRecord.Protein, "protein", 0, "Protein per portion (g)")
	f.Float64Var(&rescaleRecord.Fats, "fats", 0, "Fats per portion (g)")
	f.Float64Var(&rescaleRecord.Water, "water", 0, "Water per portion (g)")
	f.Float64Var(&rescaleGrams, "grams", 0, "Grams eaten")
	_ = rescaleCmd.MarkFlagRequired("grams")
	rootCmd.AddCommand(rescaleCmd)
}
