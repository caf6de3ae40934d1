package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/advisor"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/api"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/assessment"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
	"github.com/rs/zerolog"
)

type fakeHistory struct {
	entries map[string][]models.HistoryEntry
	err     error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{entries: map[string][]models.HistoryEntry{}}
}

func (f *fakeHistory) Append(_ context.Context, sessionID string, entry models.HistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries[sessionID] = append([]models.HistoryEntry{entry}, f.entries[sessionID]...)
	return nil
}

func (f *fakeHistory) List(_ context.Context, sessionID string) ([]models.HistoryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[sessionID], nil
}

func (f *fakeHistory) Clear(_ context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.entries, sessionID)
	return nil
}

type failingAssessor struct{ err error }

func (f failingAssessor) Assess(context.Context, models.AssessmentRequest, string) (*models.Assessment, error) {
	return nil, f.err
}

func newContainer(t *testing.T, assessor advisor.Assessor, history *fakeHistory) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	classifier := scope.MustNew(scope.DefaultTable())

	var store advisor.HistoryStore
	var reader api.HistoryStore
	if history != nil {
		store, reader = history, history
	}

	exec := advisor.NewExecutor(classifier, assessor, store, nil, &logger)
	return api.NewContainer(api.NewHandler(classifier, exec, reader, &logger))
}

func doRequest(t *testing.T, container *restful.Container, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	recorder := doRequest(t, container, http.MethodGet, "/api/v1/health", nil)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_CheckScope(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	tests := []struct {
		name      string
		spec      string
		inScope   bool
		category  string
		suggested string
		empty     bool
	}{
		{"out of scope", "GPLライセンスのライブラリを使いたい", false, "OSS License", "", false},
		{"in scope with suggestion", "解約ボタンを小さく表示する", true, "", "消費者保護", false},
		{"empty input", "  ", false, "", "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := doRequest(t, container, http.MethodPost, "/api/v1/scope/check", api.ScopeCheckRequest{Specification: test.spec})

			if recorder.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
			}

			var response api.ScopeCheckResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}

			if response.InScope != test.inScope {
				t.Errorf("Expected in_scope=%v, got %v", test.inScope, response.InScope)
			}
			if response.Category != test.category {
				t.Errorf("Expected category %q, got %q", test.category, response.Category)
			}
			if response.SuggestedCategory != test.suggested {
				t.Errorf("Expected suggestion %q, got %q", test.suggested, response.SuggestedCategory)
			}
			if response.Empty != test.empty {
				t.Errorf("Expected empty_input=%v, got %v", test.empty, response.Empty)
			}
		})
	}
}

func TestAPI_CheckScope_TooLong(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	spec := strings.Repeat("あ", api.MaxSpecificationLength+1)
	recorder := doRequest(t, container, http.MethodPost, "/api/v1/scope/check", api.ScopeCheckRequest{Specification: spec})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_CheckScope_InvalidBody(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scope/check", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if response.Code != http.StatusBadRequest {
		t.Errorf("Expected code 400 in body, got %d", response.Code)
	}
}

func TestAPI_Categories(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	recorder := doRequest(t, container, http.MethodGet, "/api/v1/scope/categories", nil)

	var categories []scope.Category
	if err := json.Unmarshal(recorder.Body.Bytes(), &categories); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(categories) != 5 || categories[0].Name != "個人情報" {
		t.Errorf("Unexpected categories: %+v", categories)
	}
}

func TestAPI_Assess_InScopeStoresHistory(t *testing.T) {
	history := newFakeHistory()
	container := newContainer(t, assessment.NewMockAssessor(), history)

	recorder := doRequest(t, container, http.MethodPost, "/api/v1/assess", api.AssessRequest{
		RequestID:     "test-001",
		SessionID:     "session-1",
		Specification: "解約ボタンを小さく表示する",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var response api.AssessResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.ID != "test-001" || response.Status != models.StatusSuccess {
		t.Errorf("Unexpected result: id=%s status=%s", response.ID, response.Status)
	}
	if response.Assessment == nil || response.Assessment.RiskLevel != models.RiskHigh {
		t.Errorf("Expected High assessment, got %+v", response.Assessment)
	}
	if !strings.HasPrefix(response.Report, "AI Legal Advisor - Risk Assessment Report") {
		t.Errorf("Expected report, got %q", response.Report)
	}

	recorder = doRequest(t, container, http.MethodGet, "/api/v1/history/session-1", nil)
	var historyResponse api.HistoryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &historyResponse); err != nil {
		t.Fatalf("Failed to parse history: %v", err)
	}
	if len(historyResponse.Entries) != 1 || historyResponse.Entries[0].RequestID != "test-001" {
		t.Errorf("Unexpected history: %+v", historyResponse.Entries)
	}

	recorder = doRequest(t, container, http.MethodDelete, "/api/v1/history/session-1", nil)
	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", recorder.Code)
	}
	if len(history.entries["session-1"]) != 0 {
		t.Error("Expected history to be cleared")
	}
}

func TestAPI_Assess_OutOfScope(t *testing.T) {
	history := newFakeHistory()
	container := newContainer(t, assessment.NewMockAssessor(), history)

	recorder := doRequest(t, container, http.MethodPost, "/api/v1/assess", api.AssessRequest{
		SessionID:     "session-1",
		Specification: "Dockerで環境構築したい",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.AssessResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.Status != models.StatusBlocked || response.Scope.Category != "Programming" {
		t.Errorf("Expected blocked Programming verdict, got %s %+v", response.Status, response.Scope)
	}
	if response.Assessment != nil || response.Report != "" {
		t.Error("Expected no assessment for out-of-scope input")
	}
	if len(history.entries) != 0 {
		t.Error("Out-of-scope input must not be stored in history")
	}
}

func TestAPI_Assess_Failure(t *testing.T) {
	container := newContainer(t, failingAssessor{err: errors.New("model unavailable")}, nil)

	recorder := doRequest(t, container, http.MethodPost, "/api/v1/assess", api.AssessRequest{Specification: "会員登録フォーム"})

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", recorder.Code)
	}

	var response api.AssessResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != models.StatusFailed || response.RetryHint == "" {
		t.Errorf("Expected failed status with retry hint, got %+v", response.AssessmentResult)
	}
}

func TestAPI_History_Disabled(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	recorder := doRequest(t, container, http.MethodGet, "/api/v1/history/session-1", nil)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", recorder.Code)
	}
}

func TestAPI_History_StoreError(t *testing.T) {
	history := newFakeHistory()
	history.err = errors.New("redis down")
	container := newContainer(t, assessment.NewMockAssessor(), history)

	recorder := doRequest(t, container, http.MethodGet, "/api/v1/history/session-1", nil)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", recorder.Code)
	}
}

func TestAPI_OpenAPI(t *testing.T) {
	container := newContainer(t, assessment.NewMockAssessor(), nil)

	recorder := doRequest(t, container, http.MethodGet, "/api/v1/openapi.json", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, path := range []string{"/api/v1/scope/check", "/api/v1/assess", "/api/v1/history/{session_id}"} {
		if !strings.Contains(body, path) {
			t.Errorf("Expected OpenAPI document to contain %s", path)
		}
	}
	if !strings.Contains(body, "Legal Advisor API") {
		t.Error("Expected OpenAPI title")
	}
}
