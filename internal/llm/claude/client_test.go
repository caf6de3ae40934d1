package claude

import (
	"testing"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
)

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "claude-sonnet-4-5"); err == nil {
		t.Error("Expected error for missing API key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Error("Expected error for missing model")
	}
}

func TestMessageParams(t *testing.T) {
	params := messageParams("claude-sonnet-4-5", llm.LLMRequest{Prompt: "仕様", MaxTokens: 4000, Temperature: 0.3})

	if string(params.Model) != "claude-sonnet-4-5" {
		t.Errorf("Expected model claude-sonnet-4-5, got %s", params.Model)
	}
	if params.MaxTokens != 4000 {
		t.Errorf("Expected MaxTokens=4000, got %d", params.MaxTokens)
	}
	if len(params.Messages) != 1 {
		t.Fatalf("Expected one message, got %d", len(params.Messages))
	}
	if params.Messages[0].Role != "user" {
		t.Errorf("Expected user role, got %s", params.Messages[0].Role)
	}
}
