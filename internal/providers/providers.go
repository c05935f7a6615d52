// Package providers turns configuration into the collaborator capabilities
// the scorer consumes. Construction failures never abort startup: they are
// logged and recorded as Unavailable.
package providers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/transcript-scorer/internal/config"
	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/nlp"
	"github.com/jonathan/transcript-scorer/internal/nlp/gemini"
	"github.com/jonathan/transcript-scorer/internal/nlp/languagetool"
	"github.com/jonathan/transcript-scorer/internal/nlp/lexicon"
	"github.com/jonathan/transcript-scorer/internal/nlp/openai"
	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/scoring"
)

// Set holds the constructed collaborators.
type Set struct {
	Grammar       nlp.Capability[nlp.GrammarChecker]
	Sentiment     nlp.SentimentAnalyzer
	SentimentName string
	Encoder       nlp.Capability[nlp.Encoder]

	// SentimentFallback answers when a remote Sentiment call fails.
	SentimentFallback nlp.SentimentAnalyzer

	gemini    llm.Client
	geminiErr error
	logger    *zap.Logger
}

// Build constructs every collaborator named by cfg.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{logger: logger}

	s.Grammar = s.buildGrammar(ctx, cfg)
	s.Sentiment, s.SentimentFallback, s.SentimentName = s.buildSentiment(ctx, cfg)
	s.Encoder = s.buildEncoder(ctx, cfg)

	s.report(scoring.CollaboratorGrammar, cfg.Grammar.Provider, s.Grammar.Loaded(), s.Grammar.Reason())
	s.report(scoring.CollaboratorSentiment, s.SentimentName, true, "")
	s.report(scoring.CollaboratorSemantic, cfg.Semantic.Provider, s.Encoder.Loaded(), s.Encoder.Reason())
	return s
}

// Scorer builds a scoring.Scorer from the collaborators. Reference
// embeddings are computed here, once.
func (s *Set) Scorer(ctx context.Context, r *rubric.Rubric, metrics *observability.Metrics) (*scoring.Scorer, error) {
	semantic := scoring.BuildSemantic(ctx, s.Encoder, r.Semantic.References)
	if s.Encoder.Loaded() && !semantic.Loaded() {
		s.logger.Warn("semantic model unavailable",
			zap.String("reason", semantic.Reason()))
	}

	return scoring.New(r, s.Sentiment,
		scoring.WithGrammar(s.Grammar),
		scoring.WithSemantic(semantic),
		scoring.WithSentimentName(s.SentimentName),
		scoring.WithSentimentFallback(s.SentimentFallback),
		scoring.WithLogger(s.logger),
		scoring.WithMetrics(metrics),
	)
}

// Close releases any SDK clients.
func (s *Set) Close() error {
	if s.gemini != nil {
		return s.gemini.Close()
	}
	return nil
}

func (s *Set) buildGrammar(ctx context.Context, cfg *config.Config) nlp.Capability[nlp.GrammarChecker] {
	var checker nlp.GrammarChecker

	switch cfg.Grammar.Provider {
	case config.GrammarNone:
		return nlp.Unavailable[nlp.GrammarChecker]("disabled by configuration")
	case config.GrammarLanguageTool:
		client, err := languagetool.New(cfg.Grammar.URL, &languagetool.Options{
			Language: cfg.Grammar.Language,
			Timeout:  cfg.CollaboratorTimeout,
		})
		if err != nil {
			return nlp.Unavailable[nlp.GrammarChecker](err.Error())
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.CollaboratorTimeout)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			return nlp.Unavailable[nlp.GrammarChecker](err.Error())
		}
		checker = client
	case config.GrammarGemini:
		client, err := s.geminiClient(ctx, cfg)
		if err != nil {
			return nlp.Unavailable[nlp.GrammarChecker](err.Error())
		}
		checker = gemini.NewGrammar(client, cfg.Grammar.Language)
	default:
		return nlp.Unavailable[nlp.GrammarChecker](fmt.Sprintf("unknown grammar provider %q", cfg.Grammar.Provider))
	}

	if cfg.Grammar.Serialize {
		checker = nlp.SerializeGrammar(checker)
	}
	return nlp.Available(checker)
}

// buildSentiment returns the analyzer, its per-call fallback and the
// provider name. The lexicon analyzer never fails and has no fallback.
func (s *Set) buildSentiment(ctx context.Context, cfg *config.Config) (nlp.SentimentAnalyzer, nlp.SentimentAnalyzer, string) {
	local := lexicon.New()
	if cfg.Sentiment.Provider == config.SentimentGemini {
		client, err := s.geminiClient(ctx, cfg)
		if err == nil {
			return gemini.NewSentiment(client), local, config.SentimentGemini
		}
		s.logger.Warn("gemini sentiment unavailable, using lexicon",
			zap.Error(err))
	}
	return local, nil, config.SentimentLexicon
}

func (s *Set) buildEncoder(ctx context.Context, cfg *config.Config) nlp.Capability[nlp.Encoder] {
	switch cfg.Semantic.Provider {
	case config.SemanticNone:
		return nlp.Unavailable[nlp.Encoder]("disabled by configuration")
	case config.SemanticOpenAI:
		opts := []openai.Option{openai.WithTimeout(cfg.CollaboratorTimeout)}
		if cfg.Semantic.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Semantic.BaseURL))
		}
		enc, err := openai.New(cfg.OpenAIAPIKey, cfg.Semantic.Model, opts...)
		if err != nil {
			return nlp.Unavailable[nlp.Encoder](err.Error())
		}
		return nlp.Available[nlp.Encoder](enc)
	case config.SemanticGemini:
		client, err := s.geminiClient(ctx, cfg)
		if err != nil {
			return nlp.Unavailable[nlp.Encoder](err.Error())
		}
		return nlp.Available[nlp.Encoder](gemini.NewEncoder(client))
	default:
		return nlp.Unavailable[nlp.Encoder](fmt.Sprintf("unknown semantic provider %q", cfg.Semantic.Provider))
	}
}

// geminiClient lazily creates one client shared by every Gemini adapter.
func (s *Set) geminiClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if s.gemini != nil || s.geminiErr != nil {
		return s.gemini, s.geminiErr
	}
	if cfg.GeminiAPIKey == "" {
		s.geminiErr = errors.New("GEMINI_API_KEY is not set")
		return nil, s.geminiErr
	}

	llmCfg := llm.DefaultGeminiConfig()
	if cfg.Semantic.Provider == config.SemanticGemini {
		llmCfg = llmCfg.WithEmbeddingModel(cfg.Semantic.Model)
	}
	s.gemini, s.geminiErr = llm.NewClient(ctx, llmCfg, cfg.GeminiAPIKey)
	return s.gemini, s.geminiErr
}

func (s *Set) report(collaborator, provider string, loaded bool, reason string) {
	if loaded {
		s.logger.Info("collaborator ready",
			zap.String("collaborator", collaborator),
			zap.String("provider", provider))
		return
	}
	s.logger.Warn("collaborator unavailable",
		zap.String("collaborator", collaborator),
		zap.String("provider", provider),
		zap.String("reason", reason))
}
