package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/ml"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/prompt"
)

// DishFromPhoto estimates a prepared dish, per 100g, from a photo data URI.
type DishFromPhoto struct {
	Engine  ml.Engine
	Prompts *prompt.Builder
}

func (s *DishFromPhoto) Estimate(ctx context.Context, photoDataURI string) (*models.NutritionRecord, error) {
	mimeType, data, err := ParseDataURI(photoDataURI)
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("Estimating dish from %s photo (%d bytes)", mimeType, len(data))
	return generate(ctx, s.Engine, ml.Request{
		Prompt: s.Prompts.DishFromPhoto(),
		Image:  &ml.Image{MIMEType: mimeType, Data: data},
		Schema: models.DishSchema(),
	})
}

// DishFromText estimates a dish, per 100g, from its name.
type DishFromText struct {
	Engine  ml.Engine
	Prompts *prompt.Builder
}

func (s *DishFromText) Estimate(ctx context.Context, dishName string) (*models.NutritionRecord, error) {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		return nil, fmt.Errorf("%w: missing dish name", ErrInvalidInput)
	}

	logger.Log.Infof("Estimating dish from name %q", dishName)
	return generate(ctx, s.Engine, ml.Request{
		Prompt: s.Prompts.DishFromText(dishName),
		Schema: models.DishSchema(),
	})
}
