package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup/logger"
	"github.com/rs/zerolog/log"
)

// checkmodels lists the Gemini models available to GOOGLE_API_KEY that
// support content generation.
func main() {
	log.Logger = logger.New(os.Getenv("LOG_LEVEL"), true)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, os.Getenv("GOOGLE_API_KEY"), "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list models")
	}

	for _, m := range models {
		fmt.Printf("%s\t%s\n", m.Name, m.DisplayName)
	}
	log.Info().Int("count", len(models)).Msg("Models listed")
}
