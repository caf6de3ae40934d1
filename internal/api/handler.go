package api

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/assessment"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
	"github.com/rs/zerolog"
)

type Classifier interface {
	CheckScope(text string) scope.Verdict
	SuggestCategory(text string) (string, bool)
	InScopeCategories() []scope.Category
}

type Executor interface {
	Execute(ctx context.Context, req models.AssessmentRequest) models.AssessmentResult
}

type HistoryStore interface {
	List(ctx context.Context, sessionID string) ([]models.HistoryEntry, error)
	Clear(ctx context.Context, sessionID string) error
}

type Handler struct {
	classifier Classifier
	executor   Executor
	history    HistoryStore
	logger     *zerolog.Logger
	now        func() time.Time
}

// NewHandler wires the HTTP handlers. history may be nil, in which case the
// history endpoints answer 503.
func NewHandler(classifier Classifier, executor Executor, history HistoryStore, logger *zerolog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		executor:   executor,
		history:    history,
		logger:     logger,
		now:        time.Now,
	}
}

// POST /api/v1/scope/check
func (h *Handler) CheckScope(req *restful.Request, resp *restful.Response) {
	var scopeRequest ScopeCheckRequest
	if err := req.ReadEntity(&scopeRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if utf8.RuneCountInString(scopeRequest.Specification) > MaxSpecificationLength {
		middleware.HandleError(resp, middleware.ErrSpecTooLong, http.StatusBadRequest)
		return
	}

	response := ScopeCheckResponse{
		Verdict: h.classifier.CheckScope(scopeRequest.Specification),
	}
	if response.InScope {
		response.SuggestedCategory, _ = h.classifier.SuggestCategory(scopeRequest.Specification)
	}

	h.logger.Info().
		Bool("in_scope", response.InScope).
		Str("category", response.Category).
		Str("suggested_category", response.SuggestedCategory).
		Msg("Scope check complete")

	resp.WriteHeaderAndEntity(http.StatusOK, response)
}

// GET /api/v1/scope/categories
func (h *Handler) Categories(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.classifier.InScopeCategories())
}

// POST /api/v1/assess
// Body: AssessRequest
// Returns: AssessResponse
func (h *Handler) Assess(req *restful.Request, resp *restful.Response) {
	var assessRequest AssessRequest
	if err := req.ReadEntity(&assessRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if utf8.RuneCountInString(assessRequest.Specification) > MaxSpecificationLength {
		middleware.HandleError(resp, middleware.ErrSpecTooLong, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", assessRequest.RequestID).
		Str("session_id", assessRequest.SessionID).
		Msg("Start assessment")

	result := h.executor.Execute(req.Request.Context(), normalize(assessRequest, h.now()))

	response := AssessResponse{AssessmentResult: result}
	if result.Assessment != nil {
		response.Report = assessment.Report(result.Assessment, h.now())
	}

	h.logger.Info().
		Str("request_id", result.ID).
		Str("status", string(result.Status)).
		Msg("Assessment complete")

	resp.WriteHeaderAndEntity(statusCode(result.Status), response)
}

// GET /api/v1/history/{session_id}
func (h *Handler) History(req *restful.Request, resp *restful.Response) {
	sessionID := req.PathParameter("session_id")
	if !h.historyAvailable(resp, sessionID) {
		return
	}

	entries, err := h.history.List(req.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to read history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, HistoryResponse{SessionID: sessionID, Entries: entries})
}

// DELETE /api/v1/history/{session_id}
func (h *Handler) ClearHistory(req *restful.Request, resp *restful.Response) {
	sessionID := req.PathParameter("session_id")
	if !h.historyAvailable(resp, sessionID) {
		return
	}

	if err := h.history.Clear(req.Request.Context(), sessionID); err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeader(http.StatusNoContent)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func (h *Handler) historyAvailable(resp *restful.Response, sessionID string) bool {
	if h.history == nil {
		middleware.HandleError(resp, middleware.ErrHistoryDisabled, http.StatusServiceUnavailable)
		return false
	}
	if sessionID == "" {
		middleware.HandleError(resp, middleware.ErrEmptySessionID, http.StatusBadRequest)
		return false
	}
	return true
}

// Out-of-scope input is a valid answer, not a client error. Only assessor
// failures change the status code.
func statusCode(status models.Status) int {
	if status == models.StatusFailed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func normalize(req AssessRequest, now time.Time) models.AssessmentRequest {
	return models.AssessmentRequest{
		RequestID: req.RequestID,
		SessionID: req.SessionID,
		Text:      req.Specification,
		CreatedAt: now,
	}
}
