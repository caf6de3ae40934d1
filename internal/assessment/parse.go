package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
)

const summaryRunes = 15

type assessmentResponse struct {
	RiskLevel       string   `json:"risk_level"`
	Summary         string   `json:"summary"`
	Laws            []string `json:"laws"`
	Reason          string   `json:"reason"`
	Recommendations []string `json:"recommendations"`

	// Keys emitted by the fine-tuned local model.
	RiskLevelJA string `json:"リスクレベル"`
	LawJA       string `json:"該当法"`
	ReasonJA    string `json:"理由"`
	FixJA       string `json:"修正案"`
}

// ParseResponse decodes a model answer into an Assessment. Markdown code
// fences are stripped, unknown risk levels become Medium and a missing
// summary is derived from the specification.
func ParseResponse(content, specification string) (*models.Assessment, error) {
	var resp assessmentResponse
	if err := json.Unmarshal([]byte(stripMarkdownCodeBlock(content)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if resp.RiskLevel == "" {
		resp.RiskLevel = resp.RiskLevelJA
	}
	if len(resp.Laws) == 0 && resp.LawJA != "" {
		resp.Laws = []string{resp.LawJA}
	}
	if resp.Reason == "" {
		resp.Reason = resp.ReasonJA
	}
	if len(resp.Recommendations) == 0 && resp.FixJA != "" {
		resp.Recommendations = []string{resp.FixJA}
	}

	if resp.RiskLevel == "" && resp.Reason == "" {
		return nil, fmt.Errorf("%w: missing risk level and reason", ErrMalformedResponse)
	}

	summary := strings.TrimSpace(resp.Summary)
	if summary == "" {
		summary = DefaultSummary(specification)
	}

	return &models.Assessment{
		RiskLevel:       NormalizeRiskLevel(resp.RiskLevel),
		Summary:         summary,
		Laws:            resp.Laws,
		Reason:          resp.Reason,
		Recommendations: resp.Recommendations,
	}, nil
}

// NormalizeRiskLevel maps English and Japanese labels onto a RiskLevel.
func NormalizeRiskLevel(level string) models.RiskLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high", "高":
		return models.RiskHigh
	case "low", "低":
		return models.RiskLow
	default:
		return models.RiskMedium
	}
}

// DefaultSummary is the history label used when the model gives none.
func DefaultSummary(specification string) string {
	runes := []rune(strings.TrimSpace(specification))
	if len(runes) <= summaryRunes {
		return string(runes)
	}
	return string(runes[:summaryRunes]) + "..."
}

func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = strings.TrimSpace(content[firstNewline+1 : closingBackticks])
	}

	return content
}
