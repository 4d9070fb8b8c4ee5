package ml

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// GeminiConfig holds configuration for the Gemini API engine
type GeminiConfig struct {
	config.Component
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url"`
}

// Load loads the Gemini configuration
func (c *GeminiConfig) Load() error {
	if err := c.LoadConfig("gemini", c); err != nil {
		return err
	}

	c.APIKey = config.Env(c.APIKey, "GEMINI_API_KEY")
	c.Model = config.Env(c.Model, "GEMINI_MODEL")
	if c.Model == "" {
		c.Model = defaultGeminiModel
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultGeminiBaseURL
	}

	return nil
}

// GeminiEngine implements the Engine interface over the Gemini REST API
type GeminiEngine struct {
	config GeminiConfig
	client *http.Client
}

// GeminiEngineFactory implements EngineFactory for the Gemini API
type GeminiEngineFactory struct {
	config GeminiConfig
}

// NewGeminiEngineFactory creates a new Gemini engine factory
func NewGeminiEngineFactory(config GeminiConfig) *GeminiEngineFactory {
	return &GeminiEngineFactory{config: config}
}

// CreateEngine creates a new Gemini engine instance
func (f *GeminiEngineFactory) CreateEngine() (Engine, error) {
	return NewGeminiEngine(f.config, &http.Client{}), nil
}

// NewGeminiEngine returns an engine that talks to the Gemini API with client.
func NewGeminiEngine(config GeminiConfig, client *http.Client) *GeminiEngine {
	if config.BaseURL == "" {
		config.BaseURL = defaultGeminiBaseURL
	}
	if config.Model == "" {
		config.Model = defaultGeminiModel
	}
	return &GeminiEngine{config: config, client: client}
}

// Load checks that the engine can authenticate.
func (e *GeminiEngine) Load(ctx context.Context) error {
	if e.config.APIKey == "" {
		return fmt.Errorf("gemini engine requires an api key (GEMINI_API_KEY)")
	}
	return nil
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting         `json:"safetySettings,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   *models.Schema `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate sends one generateContent request and returns the JSON answer.
func (e *GeminiEngine) Generate(ctx context.Context, req Request) (string, error) {
	parts := []geminiPart{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: req.Image.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
		}})
	}

	requestBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		},
		SafetySettings: req.Safety,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(e.config.BaseURL, "/"), e.config.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Sent as a header so the key never shows up in logged request errors.
	httpReq.Header.Set("x-goog-api-key", e.config.APIKey)

	logger.Log.Debugf("Calling Gemini model %s", e.config.Model)
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Candidates) == 0 {
		if response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", response.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := response.Candidates[0]
	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, candidate.FinishReason)
	}

	return CleanResponse(sb.String()), nil
}
