package assessment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/config"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrEmptySpecification = errors.New("specification is empty")
	ErrMalformedResponse  = errors.New("model response is not a valid assessment")
)

// Assessor produces a legal-risk assessment for an in-scope specification.
type Assessor interface {
	Assess(ctx context.Context, req models.AssessmentRequest, category string) (*models.Assessment, error)
}

type promptData struct {
	Input    string
	Category string
}

// LLMAssessor asks a language model for the assessment using a configurable
// prompt template.
type LLMAssessor struct {
	promptTemplate *template.Template
	modelConfig    config.ModelConfig
	llmClient      llm.LLMClient
	logger         *zerolog.Logger
}

func NewLLMAssessor(cfg *config.AssessmentConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*LLMAssessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("assessment config is nil")
	}

	tmpl, err := template.New("assessment").Parse(cfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assessment prompt template: %w", err)
	}

	return &LLMAssessor{
		promptTemplate: tmpl,
		modelConfig:    cfg.Model,
		llmClient:      llmClient,
		logger:         logger,
	}, nil
}

func (a *LLMAssessor) Assess(ctx context.Context, req models.AssessmentRequest, category string) (*models.Assessment, error) {
	if req.Text == "" {
		return nil, ErrEmptySpecification
	}

	now := time.Now()

	prompt, err := a.buildPrompt(req.Text, category)
	if err != nil {
		return nil, err
	}

	request := llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   a.modelConfig.MaxTokens,
		Temperature: a.modelConfig.Temperature,
	}

	var resp *llm.LLMResponse
	if a.modelConfig.Retry {
		resp, err = a.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = a.llmClient.InvokeModel(ctx, request)
	}

	if err != nil {
		a.logger.Error().
			Err(err).
			Str("requestID", req.RequestID).
			Msg("LLM call failed")
		return nil, err
	}

	result, err := ParseResponse(resp.Content, req.Text)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("requestID", req.RequestID).
			Str("content", resp.Content).
			Msg("failed to deserialize LLM response")
		return nil, err
	}

	result.InferenceTime = time.Since(now)

	a.logger.Info().
		Str("requestID", req.RequestID).
		Str("riskLevel", string(result.RiskLevel)).
		Str("model", resp.Model).
		Dur("duration", result.InferenceTime).
		Msg("assessment completed")

	return result, nil
}

func (a *LLMAssessor) buildPrompt(text, category string) (string, error) {
	var buf bytes.Buffer
	if err := a.promptTemplate.Execute(&buf, promptData{Input: text, Category: category}); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}
