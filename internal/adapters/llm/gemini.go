package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig selects the backend and model for GeminiClient.
type GeminiConfig struct {
	// APIKey selects the Gemini API backend.
	APIKey string

	// Project and Location select the Vertex AI backend when Vertex is true.
	Vertex   bool
	Project  string
	Location string

	ModelName string

	// BaseURL overrides the API endpoint, e.g. for a local proxy.
	BaseURL string
}

// GeminiClient implements domain.TextGenerator on top of google.golang.org/genai.
// It is built once at startup and is safe for concurrent use.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates the genai client for the configured backend.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-flash-lite-latest"
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Vertex {
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("vertex backend requires project and location")
		}
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	} else if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini backend requires an API key")
	}

	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// ModelName returns the fixed model identifier sent with every call.
func (g *GeminiClient) ModelName() string {
	return g.modelName
}

// GenerateText sends one text prompt and returns the model's trimmed text.
// An empty reply is not an error here; callers decide what it means.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return strings.TrimSpace(res.Text()), nil
}
