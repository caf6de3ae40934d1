package models

import (
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
)

type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusBlocked Status = "blocked"
	StatusFailed  Status = "failed"
)

type EventType string

const (
	EventTypeAssessmentRequest EventType = "assessment_request"
)

// Input message

type AssessmentEvent struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	SessionID     string    `json:"session_id"`
	Specification string    `json:"specification"`
}

// Normalized internal object
type AssessmentRequest struct {
	RequestID string    `json:"request_id" jsonschema:"description=Unique request identifier"`
	SessionID string    `json:"session_id,omitempty" jsonschema:"description=Session whose history receives the result"`
	Text      string    `json:"specification" jsonschema:"required,description=Feature specification to assess"`
	CreatedAt time.Time `json:"created_at" jsonschema:"description=Time when the request was created"`
}

// Assessment is the model's legal-risk opinion on one specification.
type Assessment struct {
	RiskLevel       RiskLevel     `json:"risk_level"`
	Summary         string        `json:"summary"`
	Laws            []string      `json:"laws"`
	Reason          string        `json:"reason"`
	Recommendations []string      `json:"recommendations"`
	InferenceTime   time.Duration `json:"inference_time_ns"`
}

// Final output
type AssessmentResult struct {
	ID                string        `json:"id"`
	SessionID         string        `json:"session_id,omitempty"`
	Status            Status        `json:"status"`
	Scope             scope.Verdict `json:"scope"`
	SuggestedCategory string        `json:"suggested_category,omitempty"`
	Assessment        *Assessment   `json:"assessment,omitempty"`
	Error             string        `json:"error,omitempty"`
	RetryHint         string        `json:"retry_hint,omitempty"`
	Duration          time.Duration `json:"duration_ns"`
}

// HistoryEntry is the per-session record shown in the history sidebar.
type HistoryEntry struct {
	RequestID     string     `json:"request_id"`
	Specification string     `json:"specification"`
	Summary       string     `json:"summary"`
	RiskLevel     RiskLevel  `json:"risk_level"`
	Assessment    Assessment `json:"assessment"`
	CreatedAt     time.Time  `json:"created_at"`
}
