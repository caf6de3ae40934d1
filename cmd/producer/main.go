package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	rdb "github.com/povarna/generative-ai-agents/legal-advisor/internal/redis"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup/logger"
	streamredis "github.com/povarna/generative-ai-agents/legal-advisor/internal/stream/redis"
	"github.com/rs/zerolog/log"
)

func main() {
	spec := flag.String("d", "", "Specification text to assess ('-' reads stdin)")
	session := flag.String("session", "", "Session ID whose history receives the result")
	eventID := flag.String("id", "", "Event ID (generated when empty)")
	stream := flag.String("stream", "legal-assessments", "Stream name")
	flag.Parse()

	if *spec == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<specification>' [-session id]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Logger = logger.New(os.Getenv("LOG_LEVEL"), true)

	text, err := readSpecification(*spec, os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read specification")
	}

	if *eventID == "" {
		*eventID = uuid.New().String()
	}

	event := models.AssessmentEvent{
		EventID:       *eventID,
		EventType:     models.EventTypeAssessmentRequest,
		SessionID:     *session,
		Specification: text,
	}

	if err := run(event, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func readSpecification(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}

	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("empty specification on stdin")
	}
	return text, nil
}

func run(event models.AssessmentEvent, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := rdb.Connect(ctx, rdb.Config{
		Addr:       addr,
		Password:   os.Getenv("REDIS_PASSWORD"),
		MaxRetries: 3,
	}, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := streamredis.Publish(ctx, client, stream, event)
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("event_id", event.EventID).Msg("Published successfully!")
	return nil
}
