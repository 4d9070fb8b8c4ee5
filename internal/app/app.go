// Package app assembles the estimation pipeline from configuration. The HTTP
// server and the command line client share it.
package app

import (
	"context"
	"fmt"

	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/ml"
	"github.com/franckalain/nutriscan/internal/ocr"
	"github.com/franckalain/nutriscan/internal/prompt"
)

type closer interface {
	Close() error
}

// Pipeline is a ready estimation service plus the resources it holds.
type Pipeline struct {
	Service *estimate.Service
	engine  ml.Engine
}

// Close releases the engine client, if it holds one.
func (p *Pipeline) Close() error {
	if c, ok := p.engine.(closer); ok {
		return c.Close()
	}
	return nil
}

// Build creates and loads the engine and text detector named in cfg.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	engine, err := ml.NewEngine(cfg.Engine.Type, cfg.Engine.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if err := engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load engine: %w", err)
	}

	detector, err := ocr.NewDetector(ctx, cfg.OCR.Type, cfg.OCR.ConfigPath)
	if err != nil {
		if c, ok := engine.(closer); ok {
			c.Close()
		}
		return nil, fmt.Errorf("failed to create text detector: %w", err)
	}

	logger.Log.Infof("Pipeline ready: engine %s, ocr %s, cuisine %s", cfg.Engine.Type, cfg.OCR.Type, cfg.Prompt.Cuisine)
	return &Pipeline{
		Service: estimate.NewService(engine, detector, prompt.NewBuilder(cfg.Prompt.Cuisine)),
		engine:  engine,
	}, nil
}
