// Package ocr reads the text printed on a label photo before the reasoning
// engine interprets it.
package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoImage is returned when DetectText is called without image bytes.
var ErrNoImage = errors.New("no image data")

// Detector extracts the text from an image. It returns "" without error when
// the image contains no readable text.
type Detector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// NewDetector creates the text detector named by detectorType.
func NewDetector(ctx context.Context, detectorType, configPath string) (Detector, error) {
	switch detectorType {
	case "vision":
		cfg := VisionConfig{}
		cfg.ConfigPath = configPath
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Vision config: %w", err)
		}
		return NewVisionDetector(ctx, cfg)
	case "rekognition":
		cfg := RekognitionConfig{}
		cfg.ConfigPath = configPath
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Rekognition config: %w", err)
		}
		return NewRekognitionDetector(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported ocr type: %s", detectorType)
	}
}
