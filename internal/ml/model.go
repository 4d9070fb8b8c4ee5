package ml

import (
	"context"
	"fmt"

	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/models"
)

// Image is an inline image sent along with a prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single structured-output call to the reasoning engine.
type Request struct {
	Prompt string
	Image  *Image
	Schema *models.Schema
	Safety []SafetySetting
}

// Engine is the reasoning engine that answers prompts with JSON conforming to
// the requested schema.
type Engine interface {
	// Load initializes the engine with its configuration
	Load(ctx context.Context) error
	// Generate runs one request and returns the JSON text of the answer
	Generate(ctx context.Context, req Request) (string, error)
}

// EngineFactory creates a new engine instance based on configuration
type EngineFactory interface {
	CreateEngine() (Engine, error)
}

// NewEngine creates a new engine instance based on the engine type
func NewEngine(engineType, configPath string) (Engine, error) {
	var factory EngineFactory

	switch engineType {
	case "vertex", "google":
		cfg := VertexConfig{Component: config.Component{ConfigPath: configPath}}
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Vertex config: %w", err)
		}
		factory = NewVertexEngineFactory(cfg)
	case "gemini":
		cfg := GeminiConfig{Component: config.Component{ConfigPath: configPath}}
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load Gemini config: %w", err)
		}
		factory = NewGeminiEngineFactory(cfg)
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", engineType)
	}
	return factory.CreateEngine()
}
