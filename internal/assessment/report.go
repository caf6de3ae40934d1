package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
)

const reportDisclaimer = "Disclaimer: This assessment is for reference only. Please consult with legal counsel."

// Report renders the plain-text export of an assessment.
func Report(a *models.Assessment, now time.Time) string {
	var b strings.Builder

	b.WriteString("AI Legal Advisor - Risk Assessment Report\n\n")
	fmt.Fprintf(&b, "Risk Level: %s\n\n", a.RiskLevel)

	b.WriteString("Applicable Laws:\n")
	for _, law := range a.Laws {
		fmt.Fprintf(&b, "• %s\n", law)
	}

	b.WriteString("\nRisk Analysis:\n")
	b.WriteString(a.Reason)
	b.WriteString("\n\nRecommendations:\n")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(reportDisclaimer)
	b.WriteString("\n")

	return b.String()
}
