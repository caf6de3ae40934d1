package api

import (
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
)

const MaxSpecificationLength = 10000

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

type ScopeCheckRequest struct {
	Specification string `json:"specification" description:"Feature specification to classify"`
}

type ScopeCheckResponse struct {
	scope.Verdict
	SuggestedCategory string `json:"suggested_category,omitempty" description:"Best matching in-scope category"`
}

type AssessRequest struct {
	RequestID     string `json:"request_id,omitempty" description:"Optional request identifier"`
	SessionID     string `json:"session_id,omitempty" description:"Session whose history receives the result"`
	Specification string `json:"specification" description:"Feature specification to assess"`
}

type AssessResponse struct {
	models.AssessmentResult
	Report string `json:"report,omitempty" description:"Plain-text export of the assessment"`
}

type HistoryResponse struct {
	SessionID string                `json:"session_id" description:"Session identifier"`
	Entries   []models.HistoryEntry `json:"entries" description:"History entries, newest first"`
}
