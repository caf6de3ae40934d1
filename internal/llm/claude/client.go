package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
)

// Client calls the Anthropic Messages API directly, without Bedrock.
type Client struct {
	client  anthropic.Client
	ModelID string
	Retry   llm.RetryPolicy
}

func NewClient(apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("Anthropic model ID is required")
	}

	return &Client{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		ModelID: model,
		Retry:   llm.DefaultRetryPolicy(),
	}, nil
}

func messageParams(model string, request llm.LLMRequest) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(request.MaxTokens),
		Temperature: anthropic.Float(request.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
	}
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	message, err := c.client.Messages.New(ctx, messageParams(c.ModelID, request))
	if err != nil {
		return nil, llm.WrapError("anthropic", err)
	}

	if len(message.Content) == 0 || message.Content[0].Text == "" {
		return nil, llm.ErrEmptyResponse
	}

	return &llm.LLMResponse{
		Content:    message.Content[0].Text,
		StopReason: string(message.StopReason),
		Model:      c.ModelID,
	}, nil
}

func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return llm.Retry(ctx, c.Retry, func(ctx context.Context) (*llm.LLMResponse, error) {
		return c.InvokeModel(ctx, request)
	})
}
