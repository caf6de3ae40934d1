package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/setup/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging. stdout carries the MCP protocol.
	log.Logger = logger.New(os.Getenv("LOG_LEVEL"), true)
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/legal-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "legal-advisor",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_scope",
		Description: "Check whether a feature specification is within the legal-risk advisor's scope. Returns the out-of-scope category and referral message when it is not.",
	}, mcpadapter.NewCheckScopeHandler(deps.Classifier))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assess_risk",
		Description: "Assess the legal risk of a feature specification: risk level, applicable laws, reasoning and recommendations. Out-of-scope input is rejected without calling the model.",
	}, mcpadapter.NewAssessRiskHandler(deps.Executor))
	return server
}
