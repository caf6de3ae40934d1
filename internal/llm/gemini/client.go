package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Client calls Google Gemini. A fine-tuned model ID, when set, replaces the
// base model.
type Client struct {
	client  *genai.Client
	ModelID string
	Retry   llm.RetryPolicy
}

func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:  client,
		ModelID: model,
		Retry:   llm.DefaultRetryPolicy(),
	}, nil
}

func generationConfig(request llm.LLMRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(request.Temperature)),
		MaxOutputTokens: int32(request.MaxTokens),
	}
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.ModelID,
		genai.Text(request.Prompt),
		generationConfig(request),
	)
	if err != nil {
		return nil, llm.WrapError("gemini", err)
	}

	content := result.Text()
	if content == "" {
		return nil, llm.ErrEmptyResponse
	}

	var stopReason string
	if len(result.Candidates) > 0 {
		stopReason = string(result.Candidates[0].FinishReason)
	}

	return &llm.LLMResponse{
		Content:    content,
		StopReason: stopReason,
		Model:      c.ModelID,
	}, nil
}

func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return llm.Retry(ctx, c.Retry, func(ctx context.Context) (*llm.LLMResponse, error) {
		return c.InvokeModel(ctx, request)
	})
}

// ModelInfo describes a model available to the configured API key.
type ModelInfo struct {
	Name        string
	DisplayName string
	Description string
}

// ListModels returns the models that support content generation, with the
// "models/" prefix removed from their names.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var result []ModelInfo
	for model, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, llm.WrapError("gemini", err)
		}
		if !supportsGeneration(model.SupportedActions) {
			continue
		}
		result = append(result, ModelInfo{
			Name:        strings.TrimPrefix(model.Name, "models/"),
			DisplayName: model.DisplayName,
			Description: model.Description,
		})
	}
	return result, nil
}

func supportsGeneration(actions []string) bool {
	for _, action := range actions {
		if action == "generateContent" {
			return true
		}
	}
	return false
}
