package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/transcript-scorer/internal/nlp"
	"github.com/jonathan/transcript-scorer/internal/rubric"
)

const ashaText = "Hello everyone, my name is Asha, I am 10 years old, I study in class 5, I love painting and playing chess. Thank you."

const weatherText = "The weather today is nice and sunny outside."

func TestScoreSalutation(t *testing.T) {
	table := rubric.MustDefault().Salutation

	tests := []struct {
		name  string
		text  string
		score float64
		level string
	}{
		{"excellent wins over good", "Good morning, I am excited to introduce myself", 5, "Excellent"},
		{"good", ashaText, 4, "Good"},
		{"normal", "Hi, I'm Ravi.", 2, "Normal"},
		{"case insensitive", "HELLO there", 2, "Normal"},
		{"none", weatherText, 0, LevelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreSalutation(tt.text, table)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.level, res.Level)
		})
	}
}

func TestScoreSalutation_Feedback(t *testing.T) {
	table := rubric.MustDefault().Salutation

	assert.Equal(t, "Good salutation detected", ScoreSalutation(ashaText, table).Feedback)
	assert.Equal(t, "hello everyone", ScoreSalutation(ashaText, table).Phrase)
	assert.Equal(t, "No salutation detected", ScoreSalutation(weatherText, table).Feedback)
}

func TestScoreSalutation_SubstringMatch(t *testing.T) {
	// "hi" is found inside "this"; phrase matching is not word-bounded.
	res := ScoreSalutation("this is me", rubric.MustDefault().Salutation)
	assert.Equal(t, 2.0, res.Score)
}

func TestScoreKeywords_Asha(t *testing.T) {
	res := ScoreKeywords(ashaText, rubric.MustDefault().Keywords)

	assert.Equal(t, 16.0, res.MustHave)
	assert.Equal(t, 0.0, res.GoodToHave)
	assert.Equal(t, 16.0, res.Score)

	var categories []string
	for _, m := range res.Matches {
		categories = append(categories, m.Category)
	}
	assert.Equal(t, []string{"name", "age", "school_class", "hobbies"}, categories)
	assert.Equal(t, "Found 4 key elements. Keywords: name: name, age: years old, school_class: class, hobbies: love", res.Feedback)
}

func TestScoreKeywords_OneTriggerPerCategory(t *testing.T) {
	res := ScoreKeywords("my mother, father, brother and sister", rubric.MustDefault().Keywords)

	assert.Equal(t, 4.0, res.MustHave)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, KeywordMatch{Category: "family", Phrase: "mother"}, res.Matches[0])
}

func TestScoreKeywords_AllCategories(t *testing.T) {
	text := "My name is Asha, 10 years old, in class 5. My family is kind. I love chess. " +
		"I am from Pune. I want to become a doctor. Fun fact: I am proud of my strength."
	res := ScoreKeywords(text, rubric.MustDefault().Keywords)

	assert.Equal(t, 20.0, res.MustHave)
	assert.Equal(t, 10.0, res.GoodToHave)
	assert.Equal(t, rubric.KeywordsMax, res.Score)
	assert.Contains(t, res.Feedback, "Found 10 key elements")
}

func TestScoreKeywords_CapApplies(t *testing.T) {
	table := rubric.MustDefault().Keywords
	table.MustHave.Cap = 8

	res := ScoreKeywords(ashaText, table)
	assert.Equal(t, 8.0, res.MustHave)
}

func TestScoreKeywords_FeedbackLimit(t *testing.T) {
	table := rubric.MustDefault().Keywords
	table.FeedbackLimit = 2

	res := ScoreKeywords(ashaText, table)
	assert.Equal(t, "Found 4 key elements. Keywords: name: name, age: years old", res.Feedback)
}

func TestScoreKeywords_None(t *testing.T) {
	res := ScoreKeywords(weatherText, rubric.MustDefault().Keywords)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "Found 0 key elements. Keywords: ", res.Feedback)
}

func TestScoreFlow(t *testing.T) {
	table := rubric.MustDefault().Flow

	tests := []struct {
		name     string
		text     string
		score    float64
		feedback string
	}{
		{"full structure", ashaText, 5, FlowFull},
		{"details without greeting", "My name is Ravi. I like cricket. Bye.", 3, FlowPartial},
		{"details too late", "Hi there. I like cricket. I play daily. My name is Ravi. Thanks.", 0, FlowNone},
		{"single sentence never has early details", "Hello, my name is Ravi, thank you", 0, FlowNone},
		{"nothing", weatherText, 0, FlowNone},
		{"only punctuation", "?!.", 0, FlowNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreFlow(tt.text, table)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.feedback, res.Feedback)
		})
	}
}

func TestScoreFlow_FirstThirdWindow(t *testing.T) {
	table := rubric.MustDefault().Flow

	// Six sentences: the window covers the first two.
	text := "Hello. I like music. My name is Ravi. I play. I sing. Thank you."
	res := ScoreFlow(text, table)
	assert.True(t, res.OpensWithGreeting)
	assert.False(t, res.EarlyDetails)
	assert.True(t, res.ClosesWithThanks)
	assert.Equal(t, 0.0, res.Score)

	text = "Hello. My name is Ravi. I like music. I play. I sing. Thank you."
	res = ScoreFlow(text, table)
	assert.True(t, res.EarlyDetails)
	assert.Equal(t, 5.0, res.Score)
}

func TestScoreSpeechRate(t *testing.T) {
	table := rubric.MustDefault().SpeechRate
	dur := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		words    int
		duration *float64
		wpm      float64
		score    float64
		feedback string
	}{
		{"ideal", 150, dur(75), 120, 10, "Ideal speech rate: 120.0 WPM"},
		{"slow", 100, dur(60), 100, 6, "Slow speech rate: 100.0 WPM"},
		{"fast", 150, dur(60), 150, 6, "Fast speech rate: 150.0 WPM"},
		{"too fast", 200, dur(60), 200, 2, "Too fast speech rate: 200.0 WPM"},
		{"too slow", 50, dur(60), 50, 2, "Too slow speech rate: 50.0 WPM"},
		{"gap between bands", 221, dur(120), 110.5, 10, "Speech rate: 110.5 WPM"},
		{"estimated", 24, nil, 120, 10, "Ideal speech rate: 120.0 WPM"},
		{"non-positive duration is estimated", 24, dur(0), 120, 10, "Ideal speech rate: 120.0 WPM"},
		{"no words", 0, nil, 0, 2, "Too slow speech rate: 0.0 WPM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreSpeechRate(tt.words, tt.duration, table)
			assert.InDelta(t, tt.wpm, res.WPM, 1e-9)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.feedback, res.Feedback)
		})
	}
}

func TestScoreSpeechRate_AssumedRateIsConfigurable(t *testing.T) {
	table := rubric.MustDefault().WithAssumedWordsPerSecond(2.5).SpeechRate

	res := ScoreSpeechRate(100, nil, table)
	assert.True(t, res.Estimated)
	assert.InDelta(t, 40.0, res.DurationSec, 1e-9)
	assert.InDelta(t, 150.0, res.WPM, 1e-9)
	assert.Equal(t, 6.0, res.Score)
}

func TestGradeGrammar(t *testing.T) {
	table := rubric.MustDefault().Grammar

	tests := []struct {
		errors int
		words  int
		score  float64
	}{
		{0, 100, 10},
		{1, 100, 10},
		{2, 100, 8},
		{3, 100, 8},
		{5, 100, 6},
		{65, 1000, 4},
		{8, 100, 2},
		{50, 100, 2},
		{1, 0, 2},
	}
	for _, tt := range tests {
		res := GradeGrammar(tt.errors, tt.words, table)
		assert.Equal(t, tt.score, res.Score, "errors=%d words=%d", tt.errors, tt.words)
		assert.True(t, res.Available)
	}

	res := GradeGrammar(2, 24, table)
	assert.Equal(t, "2 grammar errors detected (8.3 per 100 words)", res.Feedback)
}

func TestGrammarFallback(t *testing.T) {
	res := GrammarFallback(rubric.MustDefault().Grammar)
	assert.Equal(t, 8.0, res.Score)
	assert.Equal(t, 0, res.Errors)
	assert.False(t, res.Available)
	assert.Equal(t, GrammarUnavailableFeedback, res.Feedback)
}

func TestScoreVocabulary(t *testing.T) {
	table := rubric.MustDefault().Vocabulary

	tests := []struct {
		name  string
		text  string
		ttr   float64
		score float64
	}{
		{"all unique", "one two three four five", 1, 10},
		{"case folded", "Go go GO go", 0.25, 2},
		{"half", "a a b b c c", 0.5, 6},
		{"asha", ashaText, 22.0 / 24.0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreVocabulary(tt.text, table)
			assert.InDelta(t, tt.ttr, res.TTR, 1e-9)
			assert.Equal(t, tt.score, res.Score)
		})
	}
}

func TestScoreVocabulary_NoWords(t *testing.T) {
	res := ScoreVocabulary("... !!!", rubric.MustDefault().Vocabulary)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, "No words found", res.Feedback)
}

func TestScoreVocabulary_Feedback(t *testing.T) {
	res := ScoreVocabulary("a a b b c c", rubric.MustDefault().Vocabulary)
	assert.Equal(t, "TTR: 0.50 (3 unique / 6 total words)", res.Feedback)
}

func TestScoreFillers(t *testing.T) {
	table := rubric.MustDefault().Fillers

	res := ScoreFillers(weatherText, table)
	assert.Equal(t, 15.0, res.Score)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, "0 filler words (0.0%). Found: ", res.Feedback)

	res = ScoreFillers("Um, I mean, um, it was okay.", table)
	// um x2, i mean x1, okay x1 over 7 words
	assert.Equal(t, 4, res.Total)
	assert.InDelta(t, 4.0/7.0*100, res.Rate, 1e-9)
	assert.Equal(t, 3.0, res.Score)
	assert.Equal(t, []FillerCount{{"um", 2}, {"i mean", 1}, {"okay", 1}}, res.Found)
}

func TestScoreFillers_SubstringCounts(t *testing.T) {
	// "like" inside "likely" and "so" inside "also" both count.
	res := ScoreFillers("It is likely also true", rubric.MustDefault().Fillers)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []FillerCount{{"like", 1}, {"so", 1}}, res.Found)
}

func TestScoreFillers_FeedbackLimit(t *testing.T) {
	res := ScoreFillers("um uh like you know so actually", rubric.MustDefault().Fillers)
	assert.Len(t, res.Found, 6)
	assert.Equal(t, 5, strings.Count(res.Feedback, "("))
}

func TestScoreFillers_NoWords(t *testing.T) {
	res := ScoreFillers("?!", rubric.MustDefault().Fillers)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, "No words to analyze", res.Feedback)
}

func TestScoreFillers_MonotoneInFillerCount(t *testing.T) {
	table := rubric.MustDefault().Fillers
	text := "My name is Asha and I enjoy painting with my family every weekend at home"

	prev := ScoreFillers(text, table).Score
	for i := 0; i < 12; i++ {
		text += " um"
		score := ScoreFillers(text, table).Score
		assert.LessOrEqual(t, score, prev, "after %d extra fillers", i+1)
		prev = score
	}
}

func TestScoreVocabulary_MonotoneInUniqueRatio(t *testing.T) {
	table := rubric.MustDefault().Vocabulary
	pool := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}

	prev := -1.0
	for unique := 1; unique <= len(pool); unique++ {
		words := make([]string, len(pool))
		for i := range words {
			words[i] = pool[i%unique]
		}
		score := ScoreVocabulary(strings.Join(words, " "), table).Score
		assert.GreaterOrEqual(t, score, prev, "unique=%d", unique)
		prev = score
	}
}

func TestGradeSentiment(t *testing.T) {
	table := rubric.MustDefault().Sentiment

	tests := []struct {
		pos   float64
		score float64
	}{
		{0.95, 15},
		{0.9, 15},
		{0.75, 12},
		{0.5, 9},
		{0.3, 6},
		{0.1, 3},
	}
	for _, tt := range tests {
		res := GradeSentiment(nlp.Polarity{Positive: tt.pos}, table)
		assert.Equal(t, tt.score, res.Score, "pos=%v", tt.pos)
	}
	assert.Equal(t, "Positive sentiment: 0.42", GradeSentiment(nlp.Polarity{Positive: 0.42}, table).Feedback)
}
