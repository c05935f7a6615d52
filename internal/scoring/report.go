package scoring

import (
	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/types"
)

// Criterion names, in report order.
const (
	CriterionContent    = "Content & Structure"
	CriterionSpeechRate = "Speech Rate"
	CriterionLanguage   = "Language & Grammar"
	CriterionClarity    = "Clarity"
	CriterionEngagement = "Engagement"
)

// Metric names within criteria.
const (
	MetricSalutation = "Salutation Level"
	MetricKeywords   = "Keyword Presence"
	MetricFlow       = "Flow"
	MetricWPM        = "Words Per Minute"
	MetricGrammar    = "Grammar Errors"
	MetricVocabulary = "Vocabulary Richness (TTR)"
	MetricFillers    = "Filler Word Rate"
	MetricSentiment  = "Sentiment/Positivity"
)

// Category maxima. Weights equal maxima since the total is 100.
const (
	ContentMax    = rubric.SalutationMax + rubric.KeywordsMax + rubric.FlowMax
	SpeechMax     = rubric.SpeechRateMax
	LanguageMax   = rubric.GrammarMax + rubric.VocabularyMax
	ClarityMax    = rubric.FillerMax
	EngagementMax = rubric.SentimentMax
)

// evaluation collects every evaluator result for one transcript.
type evaluation struct {
	words      int
	sentences  int
	salutation SalutationResult
	keywords   KeywordResult
	flow       FlowResult
	speech     SpeechRateResult
	grammar    GrammarResult
	vocabulary VocabularyResult
	fillers    FillerResult
	sentiment  SentimentResult
	// semantic is nil when no encoder is available.
	semantic *Similarities
}

func (e evaluation) similarity(pick func(Similarities) float64) *types.SemanticSimilarity {
	if e.semantic == nil {
		return types.SimilarityUnavailable()
	}
	return types.Similarity(pick(*e.semantic))
}

func (e evaluation) report() *types.ScoreReport {
	content := e.salutation.Score + e.keywords.Score + e.flow.Score
	language := e.grammar.Score + e.vocabulary.Score

	criteria := []types.CriterionResult{
		{
			Name:             CriterionContent,
			Score:            content,
			MaxScore:         ContentMax,
			WeightPercentage: ContentMax,
			Details: []types.MetricDetail{
				{
					Metric:   MetricSalutation,
					Score:    types.Float(e.salutation.Score),
					MaxScore: types.Float(rubric.SalutationMax),
					Feedback: e.salutation.Feedback,
					Level:    e.salutation.Level,
				},
				{
					Metric:   MetricKeywords,
					Score:    types.Float(e.keywords.Score),
					MaxScore: types.Float(rubric.KeywordsMax),
					Feedback: e.keywords.Feedback,
				},
				{
					Metric:   MetricFlow,
					Score:    types.Float(e.flow.Score),
					MaxScore: types.Float(rubric.FlowMax),
					Feedback: e.flow.Feedback,
				},
			},
			SemanticSimilarity: e.similarity(func(s Similarities) float64 { return s.Content }),
		},
		{
			Name:             CriterionSpeechRate,
			Score:            e.speech.Score,
			MaxScore:         SpeechMax,
			WeightPercentage: SpeechMax,
			Details: []types.MetricDetail{
				{
					Metric:   MetricWPM,
					Value:    types.Float(round(e.speech.WPM, 1)),
					Feedback: e.speech.Feedback,
				},
			},
		},
		{
			Name:             CriterionLanguage,
			Score:            language,
			MaxScore:         LanguageMax,
			WeightPercentage: LanguageMax,
			Details: []types.MetricDetail{
				{
					Metric:     MetricGrammar,
					Score:      types.Float(e.grammar.Score),
					MaxScore:   types.Float(rubric.GrammarMax),
					ErrorCount: types.Int(e.grammar.Errors),
					Feedback:   e.grammar.Feedback,
				},
				{
					Metric:   MetricVocabulary,
					Score:    types.Float(e.vocabulary.Score),
					MaxScore: types.Float(rubric.VocabularyMax),
					Value:    types.Float(round(e.vocabulary.TTR, 2)),
					Feedback: e.vocabulary.Feedback,
				},
			},
		},
		{
			Name:             CriterionClarity,
			Score:            e.fillers.Score,
			MaxScore:         ClarityMax,
			WeightPercentage: ClarityMax,
			Details: []types.MetricDetail{
				{
					Metric:   MetricFillers,
					Value:    types.Float(round(e.fillers.Rate, 2)),
					Feedback: e.fillers.Feedback,
				},
			},
			SemanticSimilarity: e.similarity(func(s Similarities) float64 { return s.Clarity }),
		},
		{
			Name:             CriterionEngagement,
			Score:            e.sentiment.Score,
			MaxScore:         EngagementMax,
			WeightPercentage: EngagementMax,
			Details: []types.MetricDetail{
				{
					Metric:   MetricSentiment,
					Value:    types.Float(round(e.sentiment.Positive, 2)),
					Feedback: e.sentiment.Feedback,
				},
			},
			SemanticSimilarity: e.similarity(func(s Similarities) float64 { return s.Engagement }),
		},
	}

	total := 0.0
	for _, c := range criteria {
		total += c.Score
	}

	return &types.ScoreReport{
		OverallScore:  round(total, 2),
		WordCount:     e.words,
		SentenceCount: e.sentences,
		Criteria:      criteria,
	}
}
