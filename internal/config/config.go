package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server struct {
		Port           string   `json:"port"`
		StaticDir      string   `json:"static_dir"`
		Debug          bool     `json:"debug"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Engine struct {
		Type       string `json:"type"` // "vertex" or "gemini"
		ConfigPath string `json:"config_path"`
	} `json:"engine"`

	OCR struct {
		Type       string `json:"type"` // "vision" or "rekognition"
		ConfigPath string `json:"config_path"`
	} `json:"ocr"`

	Prompt struct {
		Cuisine string `json:"cuisine"`
	} `json:"prompt"`
}

// Duration is a time.Duration read from strings such as "45s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Handle missing values
	if config.Server.Port == "" {
		config.Server.Port = os.Getenv("PORT")
	}
	if config.Server.Port == "" {
		return nil, fmt.Errorf("server port is not set in config file")
	}
	config.applyDefaults()

	return &config, nil
}

// LoadClientConfig loads the configuration used by the command line client.
// The port is not required and a missing file yields the defaults.
func LoadClientConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	var config Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./static"
	}
	if c.Server.RequestTimeout.Duration <= 0 {
		c.Server.RequestTimeout.Duration = 60 * time.Second
	}
	if c.Engine.Type == "" {
		c.Engine.Type = "vertex"
	}
	if c.OCR.Type == "" {
		c.OCR.Type = "vision"
	}
	if c.Prompt.Cuisine == "" {
		c.Prompt.Cuisine = "Peruvian"
	}
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	// First try environment variable
	if path := os.Getenv("NUTRISCAN_CONFIG"); path != "" {
		return path
	}

	// Then try config directory
	configDir := "config"
	if _, err := os.Stat(configDir); err == nil {
		return filepath.Join(configDir, "config.json")
	}

	// Finally, try current directory
	return "config.json"
}
