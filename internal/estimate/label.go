package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/ml"
	"github.com/franckalain/nutriscan/internal/models"
	"github.com/franckalain/nutriscan/internal/ocr"
	"github.com/franckalain/nutriscan/internal/prompt"
)

// LabelFromPhoto reads a nutrition label in two dependent steps: OCR turns
// the photo into text, then the engine interprets that text. The portion
// comes from the label itself.
type LabelFromPhoto struct {
	Detector ocr.Detector
	Engine   ml.Engine
	Prompts  *prompt.Builder
}

func (s *LabelFromPhoto) Estimate(ctx context.Context, photoDataURI string) (*models.NutritionRecord, error) {
	mimeType, data, err := ParseDataURI(photoDataURI)
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("Reading label from %s photo (%d bytes)", mimeType, len(data))
	text, err := s.Detector.DetectText(ctx, data)
	if err != nil {
		logger.Log.Errorf("Text detection failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTextDetection, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrExtraction
	}
	logger.Log.Debugf("OCR text (%d chars): %s", len(text), text)

	return generate(ctx, s.Engine, ml.Request{
		Prompt: s.Prompts.LabelFromText(text),
		Schema: models.LabelSchema(),
	})
}
