package batch

import (
	"errors"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
)

var ErrNoLabeledRecords = errors.New("no records with expected_in_scope")

type ScopeChecker interface {
	CheckScope(text string) scope.Verdict
}

type Mismatch struct {
	EventID          string `json:"event_id"`
	LineNumber       int    `json:"line"`
	ExpectedInScope  bool   `json:"expected_in_scope"`
	ExpectedCategory string `json:"expected_category,omitempty"`
	InScope          bool   `json:"in_scope"`
	Category         string `json:"category,omitempty"`
}

type ValidationResult struct {
	TotalRecords   int        `json:"total_records"`
	AgreementCount int        `json:"agreement_count"`
	AgreementRate  float64    `json:"agreement_rate"`
	Threshold      float64    `json:"threshold"`
	Passed         bool       `json:"passed"`
	Mismatches     []Mismatch `json:"mismatches,omitempty"`
}

// ValidateScope compares classifier verdicts against labeled records. A
// record agrees when in_scope matches and, if an expected category is given,
// the reported category matches too. No model is called.
func ValidateScope(records []InputRecord, checker ScopeChecker, threshold float64) (*ValidationResult, error) {
	result := &ValidationResult{Threshold: threshold}

	for _, record := range records {
		if record.Error != nil || record.Request.ExpectedInScope == nil {
			continue
		}
		result.TotalRecords++

		verdict := checker.CheckScope(record.Request.Specification)
		expected := *record.Request.ExpectedInScope

		agrees := verdict.InScope == expected
		if agrees && record.Request.ExpectedCategory != "" {
			agrees = verdict.Category == record.Request.ExpectedCategory
		}

		if agrees {
			result.AgreementCount++
			continue
		}

		result.Mismatches = append(result.Mismatches, Mismatch{
			EventID:          record.Request.EventID,
			LineNumber:       record.LineNumber,
			ExpectedInScope:  expected,
			ExpectedCategory: record.Request.ExpectedCategory,
			InScope:          verdict.InScope,
			Category:         verdict.Category,
		})
	}

	if result.TotalRecords == 0 {
		return nil, ErrNoLabeledRecords
	}

	result.AgreementRate = float64(result.AgreementCount) / float64(result.TotalRecords)
	result.Passed = result.AgreementRate >= threshold

	return result, nil
}
