package gemini

import (
	"context"
	"testing"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", ""); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(llm.LLMRequest{Prompt: "x", MaxTokens: 4000, Temperature: 0.3})

	if cfg.MaxOutputTokens != 4000 {
		t.Errorf("Expected MaxOutputTokens=4000, got %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.3) {
		t.Errorf("Expected Temperature=0.3, got %v", cfg.Temperature)
	}
}

func TestSupportsGeneration(t *testing.T) {
	if !supportsGeneration([]string{"countTokens", "generateContent"}) {
		t.Error("Expected generateContent to be supported")
	}
	if supportsGeneration([]string{"embedContent"}) {
		t.Error("Embedding-only model should be filtered out")
	}
}
