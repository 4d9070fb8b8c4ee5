package ocr

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/franckalain/nutriscan/internal/config"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// VisionConfig holds configuration for Google Cloud Vision
type VisionConfig struct {
	config.Component
	CredentialsFile string `json:"credentials_file"`
	Endpoint        string `json:"endpoint"`
}

// Load loads the Vision configuration
func (c *VisionConfig) Load() error {
	if err := c.LoadConfig("vision", c); err != nil {
		return err
	}
	c.CredentialsFile = config.Env(c.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	return nil
}

// VisionDetector runs TEXT_DETECTION on Google Cloud Vision.
type VisionDetector struct {
	service *vision.Service
}

// NewVisionDetector creates a Vision client. Extra options are appended
// after the ones derived from cfg.
func NewVisionDetector(ctx context.Context, cfg VisionConfig, extra ...option.ClientOption) (*VisionDetector, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	opts = append(opts, extra...)

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionDetector{service: svc}, nil
}

// DetectText returns the full-page transcription, which Vision lists as the
// first text annotation.
func (d *VisionDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoImage
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := d.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("text detection request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}

	res := resp.Responses[0]
	if res.Error != nil && res.Error.Message != "" {
		return "", fmt.Errorf("text detection failed: %s", res.Error.Message)
	}
	if len(res.TextAnnotations) > 0 && res.TextAnnotations[0].Description != "" {
		return res.TextAnnotations[0].Description, nil
	}
	if res.FullTextAnnotation != nil {
		return res.FullTextAnnotation.Text, nil
	}
	return "", nil
}
