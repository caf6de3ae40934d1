package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/advisor"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/assessment"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/audit"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/config"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/history"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm/claude"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/llm/gpt"
	rdb "github.com/povarna/generative-ai-agents/legal-advisor/internal/redis"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
	"github.com/rs/zerolog"
)

type Config struct {
	DefaultProvider   string
	AWSRegion         string
	ClaudeModelID     string
	OpenAIKey         string
	OpenAIModelID     string
	GoogleAPIKey      string
	GeminiModelID     string
	TunedModelID      string
	AnthropicKey      string
	AnthropicModelID  string
	RedisAddr         string
	RedisPassword     string
	HistoryMaxEntries int
	HistoryTTL        time.Duration
	DatabaseURL       string
}

type Dependencies struct {
	Classifier *scope.Classifier
	Executor   *advisor.Executor
	History    *history.Store
	Logger     *zerolog.Logger

	closers []func()
}

// Close releases the Redis and Postgres connections opened by Wire.
func (d *Dependencies) Close() {
	for _, closer := range d.closers {
		closer()
	}
}

func LoadConfig() *Config {
	return &Config{
		DefaultProvider:   getEnv("DEFAULT_LLM_PROVIDER", "mock"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:     getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:         getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:     getEnv("OPEN_AI_MODEL_ID", ""),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GeminiModelID:     getEnv("GEMINI_MODEL_ID", gemini.DefaultModel),
		TunedModelID:      getEnv("TUNED_MODEL_ID", ""),
		AnthropicKey:      getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModelID:  getEnv("ANTHROPIC_MODEL_ID", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		HistoryMaxEntries: getEnvInt("HISTORY_MAX_ENTRIES", history.DefaultMaxEntries),
		HistoryTTL:        getEnvDuration("HISTORY_TTL", history.DefaultTTL),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
	}
}

// NewClassifier builds the scope classifier from configs/scope.yaml, falling
// back to a built-in rule table (SCOPE_RULESET=default|legacy) when the file
// is absent.
func NewClassifier(logger *zerolog.Logger) (*scope.Classifier, error) {
	scopeCfg, err := config.LoadScopeConfig()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load scope config: %w", err)
		}
		ruleset := getEnv("SCOPE_RULESET", "default")
		logger.Warn().Err(err).Str("ruleset", ruleset).Msg("scope config not found, using built-in rules")
		if ruleset == "legacy" {
			return scope.New(scope.LegacyTable())
		}
		return scope.New(scope.DefaultTable())
	}

	classifier, err := scope.New(scopeCfg.Table())
	if err != nil {
		return nil, fmt.Errorf("failed to build scope classifier: %w", err)
	}

	logger.Info().
		Int("out_of_scope_rules", len(classifier.Rules())).
		Int("in_scope_categories", len(classifier.InScopeCategories())).
		Msg("scope classifier ready")

	return classifier, nil
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	classifier, err := NewClassifier(logger)
	if err != nil {
		return nil, err
	}
	deps.Classifier = classifier

	assessor, err := createAssessor(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var historyStore advisor.HistoryStore
	if cfg.RedisAddr != "" {
		client, err := rdb.Connect(ctx, rdb.Config{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			MaxRetries: 3,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect history store: %w", err)
		}
		deps.closers = append(deps.closers, func() { _ = client.Close() })
		deps.History = history.NewStore(client, cfg.HistoryMaxEntries, cfg.HistoryTTL)
		historyStore = deps.History
	} else {
		logger.Info().Msg("REDIS_ADDR not set, session history disabled")
	}

	var recorder advisor.Recorder = audit.NopRecorder{}
	if cfg.DatabaseURL != "" {
		pg, err := audit.NewPostgresRecorder(ctx, cfg.DatabaseURL)
		if err != nil {
			deps.Close()
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			deps.Close()
			return nil, err
		}
		deps.closers = append(deps.closers, pg.Close)
		recorder = pg
	}

	deps.Executor = advisor.NewExecutor(classifier, assessor, historyStore, recorder, logger)

	return deps, nil
}

func createAssessor(ctx context.Context, cfg *Config, logger *zerolog.Logger) (advisor.Assessor, error) {
	if cfg.DefaultProvider == "mock" {
		logger.Info().Msg("using mock assessor")
		return assessment.NewMockAssessor(), nil
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.DefaultProvider, err)
	}

	assessmentCfg, err := config.LoadAssessmentConfig()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load assessment config: %w", err)
		}
		logger.Warn().Err(err).Msg("assessment config not found, using built-in prompt")
		assessmentCfg = config.DefaultAssessmentConfig()
	}

	logger.Info().
		Str("provider", cfg.DefaultProvider).
		Int("max_tokens", assessmentCfg.Model.MaxTokens).
		Float64("temperature", assessmentCfg.Model.Temperature).
		Msg("using LLM assessor")

	return assessment.NewLLMAssessor(assessmentCfg, llmClient, logger)
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case "gemini":
		model := cfg.GeminiModelID
		if cfg.TunedModelID != "" {
			model = cfg.TunedModelID
		}
		return gemini.NewClient(ctx, cfg.GoogleAPIKey, model)
	case "anthropic":
		return claude.NewClient(cfg.AnthropicKey, cfg.AnthropicModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
