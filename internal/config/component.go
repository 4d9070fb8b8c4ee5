package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/franckalain/nutriscan/internal/logger"
)

// Component provides file-then-environment loading for the settings of a
// single collaborator (engine or OCR backend).
type Component struct {
	ConfigPath string `json:"-"`
}

// LoadConfig loads configuration from a file, falling back to environment variables.
// The caller fills any field still empty from the environment afterwards.
func (c *Component) LoadConfig(name string, target any) error {
	// Try to load from file first
	if c.ConfigPath != "" {
		data, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read %s config: %w", name, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse %s config: %w", name, err)
		}
		logger.Log.Infof("Loaded %s configuration from file: %s", name, c.ConfigPath)
		return nil
	}

	// Try default config file in config directory
	defaultPath := filepath.Join("config", name+".json")
	if data, err := os.ReadFile(defaultPath); err == nil {
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse %s config: %w", name, err)
		}
		logger.Log.Infof("Loaded %s configuration from default file: %s", name, defaultPath)
		return nil
	}

	// Fall back to environment variables
	logger.Log.Infof("Using environment variables for %s configuration", name)
	return nil
}

// Env returns the value of key when current is empty.
func Env(current, key string) string {
	if current != "" {
		return current
	}
	return os.Getenv(key)
}
