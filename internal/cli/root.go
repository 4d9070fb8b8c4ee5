// Package cli implements the nutri command, a terminal client for the
// estimation pipeline.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/franckalain/nutriscan/internal/app"
	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
	timeout    time.Duration
)

// estimator is the part of the pipeline the commands use.
type estimator interface {
	Estimate(ctx context.Context, kind estimate.Kind, input string) (*models.NutritionRecord, error)
}

// newEstimator builds the configured pipeline. Tests replace it.
var newEstimator = func(ctx context.Context) (estimator, func(), error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.LoadClientConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if timeout <= 0 {
		timeout = cfg.Server.RequestTimeout.Duration
	}

	pipeline, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.Service, func() { pipeline.Close() }, nil
}

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "nutri estimates nutrition facts from food photos, dish names and labels",
	Long: "nutri asks the configured reasoning engine for the energy, protein, fats and water of a dish " +
		"(from a photo or its name) or reads them from a photo of a packaged-food nutrition label, " +
		"and rescales the result to the grams you actually ate.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Log = logger.New(cmd.ErrOrStderr(), cmd.ErrOrStderr())
			logger.Log.SetDebug(true)
			return
		}
		logger.Log = logger.New(io.Discard, io.Discard)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline activity to stderr")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Give up after this long (default from config)")
}
