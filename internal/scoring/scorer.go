package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/transcript-scorer/internal/nlp"
	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/tokenize"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// Collaborator names used in logs and metrics.
const (
	CollaboratorGrammar   = "grammar"
	CollaboratorSentiment = "sentiment"
	CollaboratorSemantic  = "semantic"
)

// Scorer runs every evaluator over a transcript and assembles the report.
// It is safe for concurrent use as long as its collaborators are.
type Scorer struct {
	rubric        *rubric.Rubric
	grammar       nlp.Capability[nlp.GrammarChecker]
	sentiment     nlp.SentimentAnalyzer
	fallback      nlp.SentimentAnalyzer
	sentimentName string
	semantic      nlp.Capability[*SemanticIndex]
	logger        *zap.Logger
	metrics       *observability.Metrics
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithGrammar sets the grammar checker capability.
func WithGrammar(c nlp.Capability[nlp.GrammarChecker]) Option {
	return func(s *Scorer) { s.grammar = c }
}

// WithSemantic sets the semantic index capability.
func WithSemantic(c nlp.Capability[*SemanticIndex]) Option {
	return func(s *Scorer) { s.semantic = c }
}

// WithSentimentFallback sets an analyzer consulted when the primary
// sentiment analyzer fails on a call.
func WithSentimentFallback(a nlp.SentimentAnalyzer) Option {
	return func(s *Scorer) { s.fallback = a }
}

// WithSentimentName records the sentiment provider name for health reporting.
func WithSentimentName(name string) Option {
	return func(s *Scorer) { s.sentimentName = name }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) { s.logger = l }
}

// WithMetrics sets the metrics sink. Defaults to none.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// New creates a Scorer. Grammar and semantic capabilities default to
// Unavailable; the sentiment analyzer is required.
func New(r *rubric.Rubric, sentiment nlp.SentimentAnalyzer, opts ...Option) (*Scorer, error) {
	if r == nil {
		return nil, errors.New("rubric is required")
	}
	if sentiment == nil {
		return nil, errors.New("sentiment analyzer is required")
	}

	s := &Scorer{
		rubric:    r,
		sentiment: sentiment,
		grammar:   nlp.Unavailable[nlp.GrammarChecker]("not configured"),
		semantic:  nlp.Unavailable[*SemanticIndex]("not configured"),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BuildSemantic turns an encoder capability into a semantic index capability
// by embedding the reference descriptions once. Any failure makes the result
// Unavailable.
func BuildSemantic(ctx context.Context, enc nlp.Capability[nlp.Encoder], refs rubric.References) nlp.Capability[*SemanticIndex] {
	e, ok := enc.Get()
	if !ok {
		return nlp.Unavailable[*SemanticIndex](enc.Reason())
	}
	ix, err := NewSemanticIndex(ctx, e, refs)
	if err != nil {
		return nlp.Unavailable[*SemanticIndex](err.Error())
	}
	return nlp.Available(ix)
}

// Rubric returns the tables the scorer grades against.
func (s *Scorer) Rubric() *rubric.Rubric {
	return s.rubric
}

// Health reports collaborator availability.
func (s *Scorer) Health() types.HealthStatus {
	return types.HealthStatus{
		Status:              "healthy",
		GrammarToolLoaded:   s.grammar.Loaded(),
		SemanticModelLoaded: s.semantic.Loaded(),
		SentimentProvider:   s.sentimentName,
	}
}

// Score evaluates a transcript. Blank text yields the degenerate report
// without consulting any collaborator. The only error source is the
// sentiment analyzer, when it fails and no fallback answers.
func (s *Scorer) Score(ctx context.Context, t types.Transcript) (*types.ScoreReport, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "scoring.Score")
	defer span.End()

	if tokenize.IsBlank(t.Text) {
		span.SetAttributes(attribute.Bool("scoring.blank", true))
		return types.EmptyReport(), nil
	}

	r := s.rubric
	words, sentences := tokenize.Counts(t.Text)

	var (
		grammar   GrammarResult
		sentiment SentimentResult
		sims      *Similarities
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grammar = s.checkGrammar(gctx, t.Text, words)
		return nil
	})
	g.Go(func() error {
		res, err := s.analyzeSentiment(gctx, t.Text)
		if err != nil {
			return err
		}
		sentiment = res
		return nil
	})
	g.Go(func() error {
		sims = s.compareSemantic(gctx, t.Text)
		return nil
	})

	// Pure evaluators run while collaborators are in flight.
	e := evaluation{
		words:      words,
		sentences:  sentences,
		salutation: ScoreSalutation(t.Text, r.Salutation),
		keywords:   ScoreKeywords(t.Text, r.Keywords),
		flow:       ScoreFlow(t.Text, r.Flow),
		speech:     ScoreSpeechRate(words, t.DurationSec, r.SpeechRate),
		vocabulary: ScoreVocabulary(t.Text, r.Vocabulary),
		fillers:    ScoreFillers(t.Text, r.Fillers),
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	e.grammar = grammar
	e.sentiment = sentiment
	e.semantic = sims

	report := e.report()
	span.SetAttributes(
		attribute.Int("scoring.words", words),
		attribute.Float64("scoring.overall", report.OverallScore),
	)
	s.metrics.RecordScore(ctx, time.Since(start), report.OverallScore)
	s.logger.Debug("transcript scored",
		zap.Int("words", words),
		zap.Int("sentences", sentences),
		zap.Float64("overall_score", report.OverallScore),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

func (s *Scorer) checkGrammar(ctx context.Context, text string, words int) GrammarResult {
	checker, ok := s.grammar.Get()
	if !ok {
		s.metrics.RecordCollaborator(ctx, CollaboratorGrammar, observability.OutcomeUnavailable)
		return GrammarFallback(s.rubric.Grammar)
	}

	ctx, span := observability.StartSpan(ctx, "scoring.grammar")
	defer span.End()

	n, err := checker.Check(ctx, text)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordCollaborator(ctx, CollaboratorGrammar, observability.OutcomeError)
		s.logger.Warn("grammar check failed, using fallback score", zap.Error(err))
		return GrammarFallback(s.rubric.Grammar)
	}
	s.metrics.RecordCollaborator(ctx, CollaboratorGrammar, observability.OutcomeOK)
	return GradeGrammar(n, words, s.rubric.Grammar)
}

func (s *Scorer) analyzeSentiment(ctx context.Context, text string) (SentimentResult, error) {
	ctx, span := observability.StartSpan(ctx, "scoring.sentiment")
	defer span.End()

	p, err := s.sentiment.Polarity(ctx, text)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordCollaborator(ctx, CollaboratorSentiment, observability.OutcomeError)
		if s.fallback == nil {
			return SentimentResult{}, fmt.Errorf("sentiment analysis failed: %w", err)
		}
		s.logger.Warn("sentiment analysis failed, using fallback analyzer", zap.Error(err))
		p, err = s.fallback.Polarity(ctx, text)
		if err != nil {
			return SentimentResult{}, fmt.Errorf("sentiment analysis failed: %w", err)
		}
		return GradeSentiment(p, s.rubric.Sentiment), nil
	}
	s.metrics.RecordCollaborator(ctx, CollaboratorSentiment, observability.OutcomeOK)
	return GradeSentiment(p, s.rubric.Sentiment), nil
}

// compareSemantic returns nil when no index is available.
func (s *Scorer) compareSemantic(ctx context.Context, text string) *Similarities {
	ix, ok := s.semantic.Get()
	if !ok {
		s.metrics.RecordCollaborator(ctx, CollaboratorSemantic, observability.OutcomeUnavailable)
		return nil
	}

	ctx, span := observability.StartSpan(ctx, "scoring.semantic")
	defer span.End()

	sims, err := ix.Compare(ctx, text)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordCollaborator(ctx, CollaboratorSemantic, observability.OutcomeError)
		s.logger.Warn("semantic comparison failed, using neutral similarity", zap.Error(err))
		neutral := UniformSimilarities(s.rubric.Semantic.NeutralSimilarity)
		return &neutral
	}
	s.metrics.RecordCollaborator(ctx, CollaboratorSemantic, observability.OutcomeOK)
	return &sims
}
