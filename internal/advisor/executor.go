package advisor

//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
	"github.com/rs/zerolog"
)

const (
	QuotaRetryHint   = "API利用制限に達しました。1〜2分ほど待ってから再試行してください。"
	GenericRetryHint = "診断中にエラーが発生しました。時間をおいて再試行してください。"
)

// ScopeChecker decides whether a specification belongs to the legal-risk domain
type ScopeChecker interface {
	CheckScope(text string) scope.Verdict
	SuggestCategory(text string) (string, bool)
}

// Assessor produces the legal-risk assessment for in-scope input
type Assessor interface {
	Assess(ctx context.Context, req models.AssessmentRequest, category string) (*models.Assessment, error)
}

// HistoryStore keeps per-session assessment history
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, entry models.HistoryEntry) error
}

// Recorder writes an audit trail of every result
type Recorder interface {
	Record(ctx context.Context, result models.AssessmentResult) error
}

type Executor struct {
	scope    ScopeChecker
	assessor Assessor
	history  HistoryStore
	recorder Recorder
	logger   *zerolog.Logger
}

func NewExecutor(
	checker ScopeChecker,
	assessor Assessor,
	history HistoryStore,
	recorder Recorder,
	logger *zerolog.Logger,
) *Executor {
	return &Executor{
		scope:    checker,
		assessor: assessor,
		history:  history,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute runs the scope filter and, for accepted input, the assessment.
// Failures are reported in the result; Execute never returns an error.
func (e *Executor) Execute(ctx context.Context, req models.AssessmentRequest) models.AssessmentResult {
	now := time.Now()

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}

	e.logger.Info().Str("requestID", req.RequestID).Msg("starting assessment")

	result := models.AssessmentResult{
		ID:        req.RequestID,
		SessionID: req.SessionID,
	}

	result.Scope = e.scope.CheckScope(req.Text)
	if !result.Scope.InScope {
		result.Status = models.StatusBlocked
		result.Duration = time.Since(now)
		e.logger.Info().
			Str("requestID", req.RequestID).
			Str("category", result.Scope.Category).
			Bool("empty", result.Scope.Empty).
			Msg("input out of scope")
		e.record(ctx, result)
		return result
	}

	if category, ok := e.scope.SuggestCategory(req.Text); ok {
		result.SuggestedCategory = category
	}

	assessment, err := e.assessor.Assess(ctx, req, result.SuggestedCategory)
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = err.Error()
		result.RetryHint = retryHint(err)
		result.Duration = time.Since(now)
		e.logger.Error().Err(err).Str("requestID", req.RequestID).Msg("assessment failed")
		e.record(ctx, result)
		return result
	}

	result.Status = models.StatusSuccess
	result.Assessment = assessment
	result.Duration = time.Since(now)

	if req.SessionID != "" && e.history != nil {
		entry := models.HistoryEntry{
			RequestID:     req.RequestID,
			Specification: req.Text,
			Summary:       assessment.Summary,
			RiskLevel:     assessment.RiskLevel,
			Assessment:    *assessment,
			CreatedAt:     req.CreatedAt,
		}
		if err := e.history.Append(ctx, req.SessionID, entry); err != nil {
			e.logger.Warn().Err(err).Str("sessionID", req.SessionID).Msg("failed to store history entry")
		}
	}

	e.record(ctx, result)

	e.logger.
		Info().
		Str("requestID", req.RequestID).
		Str("riskLevel", string(assessment.RiskLevel)).
		Str("suggestedCategory", result.SuggestedCategory).
		Dur("duration", result.Duration).
		Msg("assessment complete")

	return result
}

func (e *Executor) record(ctx context.Context, result models.AssessmentResult) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(ctx, result); err != nil {
		e.logger.Warn().Err(err).Str("requestID", result.ID).Msg("failed to record audit entry")
	}
}

func retryHint(err error) string {
	if errors.Is(err, llm.ErrQuotaExceeded) {
		return QuotaRetryHint
	}
	return GenericRetryHint
}
