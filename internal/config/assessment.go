package config

import (
	"errors"
	"fmt"
	"os"
	"text/template"

	"go.yaml.in/yaml/v3"
)

// AssessmentConfig holds the legal-risk prompt and model parameters.
type AssessmentConfig struct {
	Prompt string      `yaml:"prompt"`
	Model  ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}

const DefaultAssessmentPrompt = `あなたは「Guardian AI」という高度な法務リスク診断システムです。
以下の仕様の法的リスクを厳格に診断してください。

【仕様】
{{.Input}}
{{if .Category}}
【想定カテゴリ】
{{.Category}}
{{end}}
【出力形式(JSON)】
{
    "risk_level": "High/Medium/Low",
    "summary": "履歴表示用の一言サマリー（20文字以内）",
    "laws": ["関連法1", "関連法2"],
    "reason": "詳細な理由（専門的な観点から）",
    "recommendations": ["推奨事項1", "推奨事項2", "推奨事項3"]
}
`

var ErrEmptyPrompt = errors.New("assessment prompt is empty")

func LoadAssessmentConfig() (*AssessmentConfig, error) {
	path := os.Getenv("ASSESSMENT_CONFIG_PATH")
	if path == "" {
		path = "configs/assessment.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AssessmentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultAssessmentConfig is used when no assessment file is present.
func DefaultAssessmentConfig() *AssessmentConfig {
	cfg := &AssessmentConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *AssessmentConfig) applyDefaults() {
	if c.Prompt == "" {
		c.Prompt = DefaultAssessmentPrompt
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 4000
	}
	if c.Model.Temperature == 0 {
		c.Model.Temperature = 0.3
	}
}

func (c *AssessmentConfig) Validate() error {
	if c.Prompt == "" {
		return ErrEmptyPrompt
	}
	if c.Model.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.Model.MaxTokens)
	}
	if c.Model.Temperature < 0.0 || c.Model.Temperature > 1.0 {
		return fmt.Errorf("temperature must be within [0.0, 1.0], got %f", c.Model.Temperature)
	}
	if _, err := template.New("assessment").Parse(c.Prompt); err != nil {
		return fmt.Errorf("failed to parse prompt template: %w", err)
	}
	return nil
}
