package ml

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/models"
	"google.golang.org/api/option"
)

const defaultVertexModel = "gemini-1.5-flash-002"

// VertexConfig holds configuration for the Vertex AI engine
type VertexConfig struct {
	config.Component
	ProjectID       string `json:"project_id"`
	Location        string `json:"location"`
	CredentialsFile string `json:"credentials_file"`
	Model           string `json:"model"`
}

// Load loads the Vertex configuration
func (c *VertexConfig) Load() error {
	if err := c.LoadConfig("vertex", c); err != nil {
		return err
	}

	// Fall back to environment variables if not set
	c.ProjectID = config.Env(c.ProjectID, "GOOGLE_PROJECT_ID")
	c.Location = config.Env(c.Location, "GOOGLE_LOCATION")
	c.CredentialsFile = config.Env(c.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	c.Model = config.Env(c.Model, "VERTEX_MODEL")
	if c.Location == "" {
		c.Location = "us-central1"
	}
	if c.Model == "" {
		c.Model = defaultVertexModel
	}

	return nil
}

// contentGenerator is the part of *genai.GenerativeModel the engine calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// VertexEngine implements the Engine interface for Gemini on Vertex AI
type VertexEngine struct {
	config VertexConfig
	client *genai.Client

	// newModel builds a per-request model so concurrent requests never share
	// generation settings.
	newModel func(req Request) contentGenerator
}

// VertexEngineFactory implements EngineFactory for Vertex AI
type VertexEngineFactory struct {
	config VertexConfig
}

// NewVertexEngineFactory creates a new Vertex engine factory
func NewVertexEngineFactory(config VertexConfig) *VertexEngineFactory {
	return &VertexEngineFactory{config: config}
}

// CreateEngine creates a new Vertex engine instance
func (f *VertexEngineFactory) CreateEngine() (Engine, error) {
	if f.config.ProjectID == "" {
		return nil, fmt.Errorf("vertex engine requires a project id")
	}
	return &VertexEngine{config: f.config}, nil
}

// Load initializes the Vertex AI client
func (e *VertexEngine) Load(ctx context.Context) error {
	opts := []option.ClientOption{}

	if e.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(e.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, e.config.ProjectID, e.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	e.client = client
	e.newModel = func(req Request) contentGenerator {
		return configureModel(client.GenerativeModel(e.config.Model), req)
	}
	return nil
}

// Close releases the underlying client.
func (e *VertexEngine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// Generate sends the prompt, and the image if any, and returns the JSON answer.
func (e *VertexEngine) Generate(ctx context.Context, req Request) (string, error) {
	if e.newModel == nil {
		return "", fmt.Errorf("engine not loaded")
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data})
	}

	logger.Log.Debugf("Calling Vertex model %s", e.config.Model)
	resp, err := e.newModel(req).GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to call ai: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return CleanResponse(text), nil
}

func configureModel(model *genai.GenerativeModel, req Request) *genai.GenerativeModel {
	model.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		model.ResponseSchema = toGenaiSchema(req.Schema)
	}
	model.SafetySettings = toGenaiSafety(req.Safety)
	return model
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil {
			return "", fmt.Errorf("prompt blocked: %v", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no response generated")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w (finish reason %v)", ErrEmptyResponse, candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

var genaiTypes = map[string]genai.Type{
	models.TypeObject: genai.TypeObject,
	models.TypeString: genai.TypeString,
	models.TypeNumber: genai.TypeNumber,
}

func toGenaiSchema(s *models.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Minimum != nil {
		out.Minimum = *s.Minimum
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

var (
	genaiCategories = map[string]genai.HarmCategory{
		HarmCategoryHateSpeech:       genai.HarmCategoryHateSpeech,
		HarmCategoryDangerousContent: genai.HarmCategoryDangerousContent,
		HarmCategoryHarassment:       genai.HarmCategoryHarassment,
		HarmCategorySexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	}
	genaiThresholds = map[string]genai.HarmBlockThreshold{
		BlockNone:           genai.HarmBlockNone,
		BlockOnlyHigh:       genai.HarmBlockOnlyHigh,
		BlockMediumAndAbove: genai.HarmBlockMediumAndAbove,
		BlockLowAndAbove:    genai.HarmBlockLowAndAbove,
	}
)

func toGenaiSafety(settings []SafetySetting) []*genai.SafetySetting {
	var out []*genai.SafetySetting
	for _, s := range settings {
		category, ok := genaiCategories[s.Category]
		if !ok {
			continue
		}
		threshold, ok := genaiThresholds[s.Threshold]
		if !ok {
			continue
		}
		out = append(out, &genai.SafetySetting{Category: category, Threshold: threshold})
	}
	return out
}
