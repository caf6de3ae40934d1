package mcpadapter

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
)

type ScopeChecker interface {
	CheckScope(text string) scope.Verdict
	SuggestCategory(text string) (string, bool)
}

type Executor interface {
	Execute(ctx context.Context, req models.AssessmentRequest) models.AssessmentResult
}

// CheckScopeInput is the MCP tool input schema for the scope filter.
type CheckScopeInput struct {
	Specification string `json:"specification" jsonschema:"feature specification to classify"`
}

// CheckScopeOutput mirrors the HTTP scope check response.
type CheckScopeOutput struct {
	InScope           bool   `json:"in_scope"`
	Category          string `json:"category,omitempty"`
	Message           string `json:"message,omitempty"`
	EmptyInput        bool   `json:"empty_input,omitempty"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
}

// AssessRiskInput is the MCP tool input schema (matches HTTP API field names).
type AssessRiskInput struct {
	RequestID     string `json:"request_id,omitempty" jsonschema:"optional request identifier"`
	SessionID     string `json:"session_id,omitempty" jsonschema:"session whose history receives the result"`
	Specification string `json:"specification" jsonschema:"feature specification to assess"`
}

// NewCheckScopeHandler returns a tool handler backed by the classifier.
// Pass the returned function to mcp.AddTool.
func NewCheckScopeHandler(checker ScopeChecker) func(context.Context, *mcp.CallToolRequest, CheckScopeInput) (*mcp.CallToolResult, CheckScopeOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CheckScopeInput) (*mcp.CallToolResult, CheckScopeOutput, error) {
		result, output := CheckScope(checker, input)
		return result, output, nil
	}
}

func CheckScope(checker ScopeChecker, input CheckScopeInput) (*mcp.CallToolResult, CheckScopeOutput) {
	verdict := checker.CheckScope(input.Specification)

	output := CheckScopeOutput{
		InScope:    verdict.InScope,
		Category:   verdict.Category,
		Message:    verdict.Message,
		EmptyInput: verdict.Empty,
	}
	if verdict.InScope {
		output.SuggestedCategory, _ = checker.SuggestCategory(input.Specification)
	}

	return nil, output
}

// NewAssessRiskHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewAssessRiskHandler(exec Executor) func(context.Context, *mcp.CallToolRequest, AssessRiskInput) (*mcp.CallToolResult, models.AssessmentResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AssessRiskInput) (*mcp.CallToolResult, models.AssessmentResult, error) {
		return AssessRisk(ctx, exec, input)
	}
}

// AssessRisk runs the scope filter and assessment. Out-of-scope and failed
// results are reported as tool errors so the client shows the message.
func AssessRisk(ctx context.Context, exec Executor, input AssessRiskInput) (*mcp.CallToolResult, models.AssessmentResult, error) {
	result := exec.Execute(ctx, models.AssessmentRequest{
		RequestID: input.RequestID,
		SessionID: input.SessionID,
		Text:      input.Specification,
		CreatedAt: time.Now(),
	})

	switch result.Status {
	case models.StatusBlocked:
		return errorResult(result.Scope.Message), result, nil
	case models.StatusFailed:
		return errorResult(result.RetryHint), result, nil
	default:
		return nil, result, nil
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
