// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/jonathan/transcript-scorer/internal/server/ratelimit"
)

// Grammar providers.
const (
	GrammarLanguageTool = "languagetool"
	GrammarGemini       = "gemini"
	GrammarNone         = "none"
)

// Sentiment providers.
const (
	SentimentLexicon = "lexicon"
	SentimentGemini  = "gemini"
)

// Semantic (embedding) providers.
const (
	SemanticOpenAI = "openai"
	SemanticGemini = "gemini"
	SemanticNone   = "none"
)

// Config is the full service configuration.
type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// RubricPath points at a rubric YAML file; empty uses the embedded default.
	RubricPath string `env:"RUBRIC_PATH"`
	// AssumedWordsPerSecond overrides the rubric's duration estimate when > 0.
	AssumedWordsPerSecond float64 `env:"ASSUMED_WORDS_PER_SECOND" envDefault:"0"`

	Grammar   GrammarConfig   `envPrefix:"GRAMMAR_"`
	Sentiment SentimentConfig `envPrefix:"SENTIMENT_"`
	Semantic  SemanticConfig  `envPrefix:"SEMANTIC_"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// CollaboratorTimeout bounds each HTTP call to an external service.
	CollaboratorTimeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"15s"`

	RateLimit ratelimit.Settings `envPrefix:"RATE_LIMIT_"`
}

// GrammarConfig selects and configures the grammar checker.
type GrammarConfig struct {
	Provider  string `env:"PROVIDER" envDefault:"languagetool"`
	URL       string `env:"URL" envDefault:"https://api.languagetool.org"`
	Language  string `env:"LANGUAGE" envDefault:"en-US"`
	Serialize bool   `env:"SERIALIZE" envDefault:"false"`
}

// SentimentConfig selects the sentiment analyzer.
type SentimentConfig struct {
	Provider string `env:"PROVIDER" envDefault:"lexicon"`
}

// SemanticConfig selects and configures the embedding encoder.
type SemanticConfig struct {
	Provider string `env:"PROVIDER" envDefault:"none"`
	Model    string `env:"MODEL"`
	BaseURL  string `env:"BASE_URL"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Missing API keys are not errors: the affected provider is reported
// unavailable at startup instead.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("config error: LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("config error: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	if c.AssumedWordsPerSecond < 0 {
		return fmt.Errorf("config error: ASSUMED_WORDS_PER_SECOND must be non-negative")
	}
	if !slices.Contains([]string{GrammarLanguageTool, GrammarGemini, GrammarNone}, c.Grammar.Provider) {
		return fmt.Errorf("config error: unknown GRAMMAR_PROVIDER %q", c.Grammar.Provider)
	}
	if !slices.Contains([]string{SentimentLexicon, SentimentGemini}, c.Sentiment.Provider) {
		return fmt.Errorf("config error: unknown SENTIMENT_PROVIDER %q", c.Sentiment.Provider)
	}
	if !slices.Contains([]string{SemanticOpenAI, SemanticGemini, SemanticNone}, c.Semantic.Provider) {
		return fmt.Errorf("config error: unknown SEMANTIC_PROVIDER %q", c.Semantic.Provider)
	}
	if c.CollaboratorTimeout <= 0 {
		return fmt.Errorf("config error: COLLABORATOR_TIMEOUT must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 0 || c.RateLimit.ScoreLimit < 0) {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
