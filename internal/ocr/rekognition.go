package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/franckalain/nutriscan/internal/config"
)

// RekognitionConfig holds configuration for AWS Rekognition
type RekognitionConfig struct {
	config.Component
	Region string `json:"region"`
}

// Load loads the Rekognition configuration
func (c *RekognitionConfig) Load() error {
	if err := c.LoadConfig("rekognition", c); err != nil {
		return err
	}
	c.Region = config.Env(c.Region, "AWS_REGION")
	return nil
}

type detectTextAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// RekognitionDetector runs DetectText on AWS Rekognition.
type RekognitionDetector struct {
	client detectTextAPI
}

// NewRekognitionDetector builds a client from the default AWS credential chain.
func NewRekognitionDetector(ctx context.Context, cfg RekognitionConfig) (*RekognitionDetector, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &RekognitionDetector{client: rekognition.NewFromConfig(awsCfg)}, nil
}

// DetectText joins the detected LINE entries in reading order, which is the
// closest Rekognition gets to a full-page transcription.
func (d *RekognitionDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoImage
	}

	out, err := d.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return "", fmt.Errorf("text detection request failed: %w", err)
	}

	var lines []string
	for _, det := range out.TextDetections {
		if det.Type != types.TextTypesLine {
			continue
		}
		if text := strings.TrimSpace(aws.ToString(det.DetectedText)); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), nil
}
