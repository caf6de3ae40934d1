package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/batch"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	log.Logger = logger.New(os.Getenv("LOG_LEVEL"), true)

	input := flag.String("input", "", "Input file relative path")
	output := flag.String("output", "", "Output file relative path")
	format := flag.String("format", "jsonl", "Output file format. Supported formats: 'jsonl', 'summary'")
	summary := flag.String("summary", "", "Optional separate summary file")
	workers := flag.Int("workers", 5, "Concurrent assessment workers")
	continueOnError := flag.Bool("continue-on-error", true, "Continue on write failures")
	dryRun := flag.Bool("dry-run", false, "Validate input without assessing")
	validate := flag.Bool("validate", false, "Validation mode: compare scope verdicts with expected_in_scope labels")
	agreementThreshold := flag.Float64("agreement-threshold", 0.9, "Minimum scope agreement rate for validation")

	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	formatValidator(format)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	// Read records
	reader := batch.NewReader(inputFile, &log.Logger)
	recordsCh := reader.ReadAll(ctx)

	var records []batch.InputRecord
	for record := range recordsCh {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("Input file parsed")

	// Dry run validation
	if *dryRun {
		dryRunAndExit(records)
	}

	// Validation mode only needs the classifier
	if *validate {
		runValidationMode(records, *agreementThreshold)
		return
	}

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	// Open output file
	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	// Create writer
	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	// Process with worker pool
	processor := batch.NewProcessor(deps.Executor, *workers, deps.Logger)
	results := processor.Process(ctx, records)

	// Write results
	successCount := 0
	errorCount := 0

	for result := range results {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("id", result.ID).Msg("Failed to write result")
			errorCount++

			if !*continueOnError {
				log.Fatal().Msg("Stopping due to write error")
			}
		} else {
			successCount++
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to flush output")
	}

	stats := writer.Summary()
	log.Info().
		Int("written", successCount).
		Int("errors", errorCount).
		Int("assessed", stats.Success).
		Int("blocked", stats.Blocked).
		Int("failed", stats.Failed).
		Dur("duration", time.Since(startTime)).
		Msg("Processing complete")

	if *summary != "" {
		writeSummary(*summary, stats)
	}

	log.Info().Msg("Batch processing complete")
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}

func formatValidator(format *string) {
	validFormats := map[string]bool{batch.FormatJSONL: true, batch.FormatSummary: true}
	if !validFormats[*format] {
		log.Fatal().
			Str("format", *format).
			Msg("Invalid format. Supported: jsonl, summary")
	}
}

func writeSummary(path string, summary *batch.Summary) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal summary")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to write summary file")
	}

	log.Info().Str("file", path).Msg("Summary written")
}

func dryRunAndExit(records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("Validation error")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Msg("Validation successful")
	os.Exit(0)
}

func runValidationMode(records []batch.InputRecord, threshold float64) {
	log.Info().Msg("Validation mode enabled")

	classifier, err := setup.NewClassifier(&log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scope classifier")
	}

	result, err := batch.ValidateScope(records, classifier, threshold)
	if err != nil {
		log.Fatal().Err(err).Msg("Validation failed")
	}

	// Output validation result as JSON to stdout
	validationJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal validation result")
	}
	fmt.Println(string(validationJSON))

	for _, m := range result.Mismatches {
		log.Warn().
			Int("line", m.LineNumber).
			Str("event_id", m.EventID).
			Bool("expected_in_scope", m.ExpectedInScope).
			Bool("in_scope", m.InScope).
			Str("category", m.Category).
			Msg("Scope mismatch")
	}

	status := "PASSED"
	if !result.Passed {
		status = "FAILED"
	}
	log.Info().
		Int("records", result.TotalRecords).
		Int("agreement", result.AgreementCount).
		Float64("agreement_rate", result.AgreementRate).
		Float64("threshold", result.Threshold).
		Str("status", status).
		Msg("Validation complete")

	if !result.Passed {
		log.Error().Msg("Review configs/scope.yaml rules and re-run validation")
		os.Exit(1)
	}
}
