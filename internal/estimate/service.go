package estimate

import (
	"context"
	"fmt"

	"github.com/franckalain/nutriscan/internal/ml"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/ocr"
	"github.com/franckalain/nutriscan/internal/prompt"
)

// Kind names the input an Estimator accepts.
type Kind string

const (
	KindDish  Kind = "dish"  // photo of a prepared dish
	KindText  Kind = "text"  // dish name
	KindLabel Kind = "label" // photo of a nutrition label
)

// Service wires the three strategies to their collaborators. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	strategies map[Kind]Estimator
}

// NewService builds the strategies around engine and detector.
func NewService(engine ml.Engine, detector ocr.Detector, prompts *prompt.Builder) *Service {
	if prompts == nil {
		prompts = prompt.NewBuilder("")
	}
	return &Service{strategies: map[Kind]Estimator{
		KindDish:  &DishFromPhoto{Engine: engine, Prompts: prompts},
		KindText:  &DishFromText{Engine: engine, Prompts: prompts},
		KindLabel: &LabelFromPhoto{Detector: detector, Engine: engine, Prompts: prompts},
	}}
}

// Strategy returns the Estimator for kind.
func (s *Service) Strategy(kind Kind) (Estimator, error) {
	e, ok := s.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown input kind %q", ErrInvalidInput, kind)
	}
	return e, nil
}

// Estimate runs the strategy for kind on input.
func (s *Service) Estimate(ctx context.Context, kind Kind, input string) (*models.NutritionRecord, error) {
	e, err := s.Strategy(kind)
	if err != nil {
		return nil, err
	}
	return e.Estimate(ctx, input)
}

// EstimateFromPhoto estimates a dish per 100g from a photo data URI.
func (s *Service) EstimateFromPhoto(ctx context.Context, photoDataURI string) (*models.NutritionRecord, error) {
	return s.Estimate(ctx, KindDish, photoDataURI)
}

// EstimateFromText estimates a dish per 100g from its name.
func (s *Service) EstimateFromText(ctx context.Context, dishName string) (*models.NutritionRecord, error) {
	return s.Estimate(ctx, KindText, dishName)
}

// ExtractFromLabelPhoto reads the nutrition facts from a label photo data URI.
func (s *Service) ExtractFromLabelPhoto(ctx context.Context, photoDataURI string) (*models.NutritionRecord, error) {
	return s.Estimate(ctx, KindLabel, photoDataURI)
}
