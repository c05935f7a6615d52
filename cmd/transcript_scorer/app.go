package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/transcript-scorer/internal/config"
	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/providers"
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/scoring"
)

// app bundles everything a command needs to score transcripts.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	rubric    *rubric.Rubric
	providers *providers.Set
	scorer    *scoring.Scorer
}

// newApp loads configuration from the environment, applies the rubric
// override and builds the scorer.
func newApp(ctx context.Context, rubricPath string, metrics *observability.Metrics) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rubricPath != "" {
		cfg.RubricPath = rubricPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	r, err := rubric.Load(cfg.RubricPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}
	r = r.WithAssumedWordsPerSecond(cfg.AssumedWordsPerSecond)

	set := providers.Build(ctx, cfg, logger)
	scorer, err := set.Scorer(ctx, r, metrics)
	if err != nil {
		_ = set.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		rubric:    r,
		providers: set,
		scorer:    scorer,
	}, nil
}

// Close releases collaborator clients and flushes the logger.
func (a *app) Close() {
	_ = a.providers.Close()
	_ = a.logger.Sync()
}
