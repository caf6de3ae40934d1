package assessment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		spec    string
		want    *models.Assessment
	}{
		{
			name:    "Plain JSON",
			content: `{"risk_level": "Medium", "summary": "位置情報", "laws": ["個人情報保護法"], "reason": "r", "recommendations": ["a", "b"]}`,
			want: &models.Assessment{
				RiskLevel:       models.RiskMedium,
				Summary:         "位置情報",
				Laws:            []string{"個人情報保護法"},
				Reason:          "r",
				Recommendations: []string{"a", "b"},
			},
		},
		{
			name:    "Fenced without language",
			content: "```\n{\"risk_level\": \"low\", \"reason\": \"r\"}\n```",
			spec:    "短い仕様",
			want: &models.Assessment{
				RiskLevel: models.RiskLow,
				Summary:   "短い仕様",
				Reason:    "r",
			},
		},
		{
			name:    "Japanese keys",
			content: `{"リスクレベル": "高", "該当法": "特定商取引法", "理由": "r", "修正案": "f"}`,
			spec:    "解約画面で3回引き止めのポップアップを表示する",
			want: &models.Assessment{
				RiskLevel:       models.RiskHigh,
				Summary:         "解約画面で3回引き止めのポップ...",
				Laws:            []string{"特定商取引法"},
				Reason:          "r",
				Recommendations: []string{"f"},
			},
		},
		{
			name:    "Unknown risk level",
			content: `{"risk_level": "Critical", "summary": "s", "reason": "r"}`,
			want: &models.Assessment{
				RiskLevel: models.RiskMedium,
				Summary:   "s",
				Reason:    "r",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseResponse(test.content, test.spec)
			if err != nil {
				t.Fatalf("ParseResponse failed: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("assessment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	for _, content := range []string{"", "not json", `{"summary": "only"}`} {
		if _, err := ParseResponse(content, "x"); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ParseResponse(%q): expected ErrMalformedResponse, got %v", content, err)
		}
	}
}

func TestDefaultSummary(t *testing.T) {
	if got := DefaultSummary("  短い  "); got != "短い" {
		t.Errorf("Expected '短い', got %q", got)
	}
	if got := DefaultSummary("0123456789abcdefg"); got != "0123456789abcde..." {
		t.Errorf("Expected truncated summary, got %q", got)
	}
}
