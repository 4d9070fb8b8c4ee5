package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/nutrition"
	"github.com/spf13/cobra"
)

var eatenGrams float64

var dishCmd = &cobra.Command{
	Use:   "dish <photo>",
	Short: "Estimate nutrients per 100g from a photo of a prepared dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, err := readImage(args[0])
		if err != nil {
			return err
		}
		return runEstimate(cmd, estimate.KindDish, uri)
	},
}

var textCmd = &cobra.Command{
	Use:   "text <dish name>",
	Short: "Estimate nutrients per 100g from the name of a dish",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEstimate(cmd, estimate.KindText, strings.Join(args, " "))
	},
}

var labelCmd = &cobra.Command{
	Use:   "label <photo>",
	Short: "Read nutrition facts from a photo of a packaged-food label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, err := readImage(args[0])
		if err != nil {
			return err
		}
		return runEstimate(cmd, estimate.KindLabel, uri)
	},
}

func runEstimate(cmd *cobra.Command, kind estimate.Kind, input string) error {
	rescale := cmd.Flags().Changed("grams")
	if rescale {
		if err := nutrition.ValidateQuantity(eatenGrams); err != nil {
			return fmt.Errorf("invalid --grams: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	est, closeFn, err := newEstimator(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rec, err := est.Estimate(ctx, kind, input)
	if err != nil {
		return fmt.Errorf("%s estimate failed: %w", kind, err)
	}

	if !rescale {
		return printRecord(cmd.OutOrStdout(), rec)
	}

	consumed, err := nutrition.Rescale(*rec, eatenGrams)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), struct {
			Record   any `json:"record"`
			Consumed any `json:"consumed"`
		}{rec, consumed})
	}
	if err := printRecord(cmd.OutOrStdout(), rec); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return printConsumed(cmd.OutOrStdout(), consumed)
}

func init() {
	for _, c := range []*cobra.Command{dishCmd, textCmd, labelCmd} {
		c.Flags().Float64Var(&eatenGrams, "grams", 0, "Also rescale the result to this many grams eaten")
		rootCmd.AddCommand(c)
	}
}
