package setup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DEFAULT_LLM_PROVIDER", "GEMINI_MODEL_ID", "HISTORY_MAX_ENTRIES", "HISTORY_TTL", "REDIS_ADDR", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.DefaultProvider != "mock" {
		t.Errorf("Expected mock provider, got %s", cfg.DefaultProvider)
	}
	if cfg.GeminiModelID != "gemini-2.5-flash" {
		t.Errorf("Expected gemini-2.5-flash, got %s", cfg.GeminiModelID)
	}
	if cfg.HistoryMaxEntries != 20 {
		t.Errorf("Expected 20 history entries, got %d", cfg.HistoryMaxEntries)
	}
	if cfg.HistoryTTL != 24*time.Hour {
		t.Errorf("Expected 24h TTL, got %s", cfg.HistoryTTL)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DEFAULT_LLM_PROVIDER", "gemini")
	t.Setenv("HISTORY_MAX_ENTRIES", "5")
	t.Setenv("HISTORY_TTL", "30m")
	t.Setenv("TUNED_MODEL_ID", "tunedModels/legal-advisor")

	cfg := LoadConfig()

	if cfg.DefaultProvider != "gemini" || cfg.HistoryMaxEntries != 5 || cfg.HistoryTTL != 30*time.Minute {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.TunedModelID != "tunedModels/legal-advisor" {
		t.Errorf("Expected tuned model, got %s", cfg.TunedModelID)
	}
}

func TestCreateLLMClient_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{}

	if _, err := createLLMClient(ctx, "unknown", cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if _, err := createLLMClient(ctx, "gemini", cfg); err == nil {
		t.Error("Expected error for missing Gemini API key")
	}
	if _, err := createLLMClient(ctx, "anthropic", cfg); err == nil {
		t.Error("Expected error for missing Anthropic API key")
	}
}

func TestNewClassifier_FallsBackToDefaults(t *testing.T) {
	t.Setenv("SCOPE_RULES_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	logger := zerolog.Nop()

	classifier, err := NewClassifier(&logger)
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	if len(classifier.Rules()) != 14 {
		t.Errorf("Expected 14 default rules, got %d", len(classifier.Rules()))
	}
}

func TestNewClassifier_LegacyRuleset(t *testing.T) {
	t.Setenv("SCOPE_RULES_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SCOPE_RULESET", "legacy")
	logger := zerolog.Nop()

	classifier, err := NewClassifier(&logger)
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	if verdict := classifier.CheckScope("GPLのコードを使いたい"); verdict.Category != "OSS" {
		t.Errorf("Expected legacy OSS category, got %q", verdict.Category)
	}
}

func TestWire_MockProvider(t *testing.T) {
	t.Setenv("SCOPE_RULES_PATH", filepath.Join("..", "..", "configs", "scope.yaml"))
	logger := zerolog.Nop()

	deps, err := Wire(context.Background(), &Config{DefaultProvider: "mock"}, &logger)
	if err != nil {
		t.Fatalf("Wire failed: %v", err)
	}
	defer deps.Close()

	if deps.History != nil {
		t.Error("History should be disabled without REDIS_ADDR")
	}

	tests := []struct {
		text   string
		status models.Status
	}{
		{"Dockerで環境構築したい", models.StatusBlocked},
		{"", models.StatusBlocked},
		{"解約ボタンを小さく表示する", models.StatusSuccess},
	}

	for _, test := range tests {
		result := deps.Executor.Execute(context.Background(), models.AssessmentRequest{Text: test.text})
		if result.Status != test.status {
			t.Errorf("Execute(%q): expected %s, got %s", test.text, test.status, result.Status)
		}
	}
}
