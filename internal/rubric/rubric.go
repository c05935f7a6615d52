// Package rubric holds the fixed scoring tables: phrase lists, filler words,
// score bands and semantic reference descriptions.
//
// Tables are configuration data. The default rubric is embedded in the binary;
// an alternative document can be loaded from disk. Every document is validated
// against the rubric JSON Schema and against the per-metric score ceilings
// before use. A loaded Rubric is treated as read-only.
package rubric

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/transcript-scorer/internal/schemas"
)

// Score ceilings per metric. Category maxima are derived from these.
const (
	SalutationMax = 5.0
	MustHaveMax   = 20.0
	GoodToHaveMax = 10.0
	KeywordsMax   = MustHaveMax + GoodToHaveMax
	FlowMax       = 5.0
	SpeechRateMax = 10.0
	GrammarMax    = 10.0
	VocabularyMax = 10.0
	FillerMax     = 15.0
	SentimentMax  = 15.0
)

//go:embed default_rubric.yaml
var defaultDocument []byte

var (
	defaultOnce   sync.Once
	defaultRubric *Rubric
	defaultErr    error
)

// Rubric is the complete set of scoring tables.
type Rubric struct {
	Version    int        `yaml:"version"`
	Salutation Salutation `yaml:"salutation"`
	Keywords   Keywords   `yaml:"keywords"`
	Flow       Flow       `yaml:"flow"`
	SpeechRate SpeechRate `yaml:"speech_rate"`
	Grammar    Grammar    `yaml:"grammar"`
	Vocabulary Vocabulary `yaml:"vocabulary"`
	Fillers    Fillers    `yaml:"fillers"`
	Sentiment  Sentiment  `yaml:"sentiment"`
	Semantic   Semantic   `yaml:"semantic"`
}

// Salutation lists greeting tiers in priority order.
type Salutation struct {
	Tiers        []SalutationTier `yaml:"tiers"`
	NoneFeedback string           `yaml:"none_feedback"`
}

// SalutationTier is one greeting level.
type SalutationTier struct {
	Level    string   `yaml:"level"`
	Score    float64  `yaml:"score"`
	Feedback string   `yaml:"feedback"`
	Phrases  []string `yaml:"phrases"`
}

// Category is a named group of trigger phrases.
type Category struct {
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
}

// TopicTable awards Points per matched category up to Cap.
type TopicTable struct {
	Points     float64    `yaml:"points"`
	Cap        float64    `yaml:"cap"`
	Categories []Category `yaml:"categories"`
}

// Keywords holds the must-have and good-to-have topic tables.
type Keywords struct {
	MustHave      TopicTable `yaml:"must_have"`
	GoodToHave    TopicTable `yaml:"good_to_have"`
	FeedbackLimit int        `yaml:"feedback_limit"`
}

// Flow holds the phrase groups used for the structure check.
type Flow struct {
	Salutation   []string `yaml:"salutation"`
	BasicDetails []string `yaml:"basic_details"`
	Closing      []string `yaml:"closing"`
	FullScore    float64  `yaml:"full_score"`
	PartialScore float64  `yaml:"partial_score"`
}

// SpeechRate holds the WPM bands and the duration estimate policy.
type SpeechRate struct {
	// AssumedWordsPerSecond estimates duration when the caller supplies none.
	AssumedWordsPerSecond float64   `yaml:"assumed_words_per_second"`
	Bands                 BandTable `yaml:"bands"`
}

// Grammar holds the error-rate bands.
type Grammar struct {
	UnavailableScore    float64   `yaml:"unavailable_score"`
	ErrorsPer100Ceiling float64   `yaml:"errors_per_100_ceiling"`
	Bands               BandTable `yaml:"bands"`
}

// Vocabulary holds the type-token ratio bands.
type Vocabulary struct {
	Bands BandTable `yaml:"bands"`
}

// Fillers holds the filler phrase list and the filler-rate bands.
type Fillers struct {
	Phrases       []string  `yaml:"phrases"`
	FeedbackLimit int       `yaml:"feedback_limit"`
	Bands         BandTable `yaml:"bands"`
}

// Sentiment holds the positive-polarity bands.
type Sentiment struct {
	Bands BandTable `yaml:"bands"`
}

// Semantic holds the reference descriptions for similarity.
type Semantic struct {
	NeutralSimilarity float64    `yaml:"neutral_similarity"`
	References        References `yaml:"references"`
}

// References are the descriptions the transcript is compared against.
type References struct {
	Content    string `yaml:"content"`
	Engagement string `yaml:"engagement"`
	Clarity    string `yaml:"clarity"`
}

// LoadError reports a rubric document that could not be used.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("invalid rubric %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the embedded rubric. It is parsed once and shared.
func Default() (*Rubric, error) {
	defaultOnce.Do(func() {
		defaultRubric, defaultErr = Parse("(embedded)", defaultDocument)
	})
	return defaultRubric, defaultErr
}

// MustDefault returns the embedded rubric, panicking if it is invalid.
func MustDefault() *Rubric {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// Load returns the rubric at path, or the embedded default when path is empty.
func Load(path string) (*Rubric, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a YAML rubric document.
func Parse(source string, data []byte) (*Rubric, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Cause: fmt.Errorf("failed to parse YAML: %w", err)}
	}
	if err := schemas.ValidateDocument(schemas.RubricSchema, doc); err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}

	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &LoadError{Source: source, Cause: fmt.Errorf("failed to decode rubric: %w", err)}
	}
	if err := r.Validate(); err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}
	return &r, nil
}

// WithAssumedWordsPerSecond returns a copy of the rubric using the given
// duration estimate. Non-positive values leave the rubric unchanged.
func (r *Rubric) WithAssumedWordsPerSecond(wps float64) *Rubric {
	if wps <= 0 || wps == r.SpeechRate.AssumedWordsPerSecond {
		return r
	}
	cp := *r
	cp.SpeechRate.AssumedWordsPerSecond = wps
	return &cp
}

// Validate checks that no table can award more than its metric ceiling.
func (r *Rubric) Validate() error {
	for _, tier := range r.Salutation.Tiers {
		if tier.Score > SalutationMax {
			return fmt.Errorf("salutation tier %q scores %.0f, above %.0f", tier.Level, tier.Score, SalutationMax)
		}
	}
	if r.Keywords.MustHave.Cap > MustHaveMax {
		return fmt.Errorf("must_have cap %.0f exceeds %.0f", r.Keywords.MustHave.Cap, MustHaveMax)
	}
	if r.Keywords.GoodToHave.Cap > GoodToHaveMax {
		return fmt.Errorf("good_to_have cap %.0f exceeds %.0f", r.Keywords.GoodToHave.Cap, GoodToHaveMax)
	}
	if r.Flow.FullScore > FlowMax || r.Flow.PartialScore > FlowMax {
		return fmt.Errorf("flow scores must not exceed %.0f", FlowMax)
	}
	if r.Grammar.UnavailableScore > GrammarMax {
		return fmt.Errorf("grammar unavailable_score %.0f exceeds %.0f", r.Grammar.UnavailableScore, GrammarMax)
	}
	if r.SpeechRate.AssumedWordsPerSecond <= 0 {
		return fmt.Errorf("speech_rate assumed_words_per_second must be positive")
	}

	tables := []struct {
		name  string
		table BandTable
		max   float64
	}{
		{"speech_rate", r.SpeechRate.Bands, SpeechRateMax},
		{"grammar", r.Grammar.Bands, GrammarMax},
		{"vocabulary", r.Vocabulary.Bands, VocabularyMax},
		{"fillers", r.Fillers.Bands, FillerMax},
		{"sentiment", r.Sentiment.Bands, SentimentMax},
	}
	for _, t := range tables {
		if got := t.table.MaxScore(); got > t.max {
			return fmt.Errorf("%s bands award %.0f, above %.0f", t.name, got, t.max)
		}
		for i, b := range t.table.Bands {
			if b.Min == nil && b.Max == nil {
				return fmt.Errorf("%s band %d has neither min nor max", t.name, i)
			}
		}
	}
	return nil
}
