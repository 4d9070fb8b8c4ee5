// Package estimate implements the estimation strategies: dish from photo,
// dish from name and label from photo. Each strategy validates its input,
// makes one reasoning engine call (label photos also make one OCR call), and
// returns a normalized record or an error. Nothing is cached or retried.
package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/ml"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/nutrition"
)

// Estimator turns one input (a photo data URI or a dish name) into a record.
type Estimator interface {
	Estimate(ctx context.Context, input string) (*models.NutritionRecord, error)
}

// generate runs the engine call shared by every strategy and converts the
// answer into a record.
func generate(ctx context.Context, engine ml.Engine, req ml.Request) (*models.NutritionRecord, error) {
	req.Safety = ml.DefaultSafety()

	text, err := engine.Generate(ctx, req)
	if err != nil {
		logger.Log.Errorf("Engine call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	if strings.TrimSpace(text) == "" {
		logger.Log.Error("Engine returned an empty answer")
		return nil, fmt.Errorf("%w: %v", ErrEngine, ml.ErrEmptyResponse)
	}

	text = ml.CleanResponse(text)
	raw, err := models.DecodeRawOutput([]byte(text))
	if err != nil {
		logger.Log.Errorf("Engine answer rejected: %v while parsing %s", err, text)
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}

	rec := nutrition.Normalize(raw)
	logger.Log.Debugf("Normalized %s answer: %+v", raw.Version, rec)
	return &rec, nil
}
