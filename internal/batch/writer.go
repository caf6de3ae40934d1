package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Summary struct {
	Total               int            `json:"total"`
	Success             int            `json:"success"`
	Blocked             int            `json:"blocked"`
	Failed              int            `json:"failed"`
	BlockedByCategory   map[string]int `json:"blocked_by_category"`
	RiskLevels          map[string]int `json:"risk_levels"`
	SuggestedByCategory map[string]int `json:"suggested_by_category"`
}

func NewSummary() *Summary {
	return &Summary{
		BlockedByCategory:   map[string]int{},
		RiskLevels:          map[string]int{},
		SuggestedByCategory: map[string]int{},
	}
}

func (s *Summary) Add(result models.AssessmentResult) {
	s.Total++
	switch result.Status {
	case models.StatusSuccess:
		s.Success++
		if result.Assessment != nil {
			s.RiskLevels[string(result.Assessment.RiskLevel)]++
		}
	case models.StatusBlocked:
		s.Blocked++
		category := result.Scope.Category
		if result.Scope.Empty {
			category = "empty_input"
		}
		s.BlockedByCategory[category]++
	case models.StatusFailed:
		s.Failed++
	}
	if result.SuggestedCategory != "" {
		s.SuggestedByCategory[result.SuggestedCategory]++
	}
}

// Writer emits results either as JSON lines or as a single summary object
// written on Close.
type Writer struct {
	w       io.Writer
	format  string
	encoder *json.Encoder
	summary *Summary
	logger  *zerolog.Logger
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		w:       w,
		format:  format,
		encoder: json.NewEncoder(w),
		summary: NewSummary(),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(result models.AssessmentResult) error {
	w.summary.Add(result)

	if w.format == FormatJSONL {
		if err := w.encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to write result %s: %w", result.ID, err)
		}
	}
	return nil
}

func (w *Writer) Summary() *Summary {
	return w.summary
}

func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}

	encoder := json.NewEncoder(w.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(w.summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	w.logger.Info().Int("total", w.summary.Total).Msg("Summary written")
	return nil
}
