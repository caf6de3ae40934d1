package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/advisor"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/assessment"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup/logger"
	"github.com/rs/zerolog/log"
)

type output struct {
	InScope           bool   `json:"in_scope"`
	Category          string `json:"category,omitempty"`
	Message           string `json:"message,omitempty"`
	EmptyInput        bool   `json:"empty_input,omitempty"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
}

// scopecheck classifies a specification offline. With -report it also runs
// the keyword mock assessor and prints the exportable report.
func main() {
	report := flag.Bool("report", false, "Run the mock assessment and print the report")
	flag.Parse()

	log.Logger = logger.New(os.Getenv("LOG_LEVEL"), true)
	logger := log.Logger

	text := strings.Join(flag.Args(), " ")
	if text == "" || text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read stdin")
		}
		text = string(data)
	}

	classifier, err := setup.NewClassifier(&logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scope classifier")
	}

	if !*report {
		verdict := classifier.CheckScope(text)
		out := output{
			InScope:    verdict.InScope,
			Category:   verdict.Category,
			Message:    verdict.Message,
			EmptyInput: verdict.Empty,
		}
		if verdict.InScope {
			out.SuggestedCategory, _ = classifier.SuggestCategory(text)
		}
		printJSON(out)
		if !verdict.InScope {
			os.Exit(2)
		}
		return
	}

	exec := advisor.NewExecutor(classifier, assessment.NewMockAssessor(), nil, nil, &logger)
	result := exec.Execute(context.Background(), models.AssessmentRequest{Text: text})

	switch result.Status {
	case models.StatusSuccess:
		fmt.Print(assessment.Report(result.Assessment, time.Now()))
	case models.StatusBlocked:
		printJSON(result.Scope)
		os.Exit(2)
	default:
		log.Fatal().Str("error", result.Error).Msg("assessment failed")
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("failed to encode output")
	}
}
