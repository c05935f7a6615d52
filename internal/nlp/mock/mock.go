// Package mock provides test doubles for the nlp collaborator interfaces.
//
// Each double returns a pre-canned result and records the texts it was
// called with, so tests can assert both on scores and on which
// collaborators were consulted.
package mock

import (
	"context"
	"sync"

	"github.com/jonathan/transcript-scorer/internal/nlp"
)

// Grammar is a mock nlp.GrammarChecker.
type Grammar struct {
	mu sync.Mutex

	// Errors is returned by Check.
	Errors int
	// Err, if non-nil, is returned as the error from Check.
	Err error

	// Calls records the text of every Check call in order.
	Calls []string
}

// Check records the call and returns Errors, Err.
func (g *Grammar) Check(_ context.Context, text string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, text)
	if g.Err != nil {
		return 0, g.Err
	}
	return g.Errors, nil
}

// CallCount returns the number of Check calls.
func (g *Grammar) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}

// Sentiment is a mock nlp.SentimentAnalyzer.
type Sentiment struct {
	mu sync.Mutex

	// Result is returned by Polarity.
	Result nlp.Polarity
	// Err, if non-nil, is returned as the error from Polarity.
	Err error

	// Calls records the text of every Polarity call in order.
	Calls []string
}

// Polarity records the call and returns Result, Err.
func (s *Sentiment) Polarity(_ context.Context, text string) (nlp.Polarity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, text)
	if s.Err != nil {
		return nlp.Polarity{}, s.Err
	}
	return s.Result, nil
}

// CallCount returns the number of Polarity calls.
func (s *Sentiment) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// Encoder is a mock nlp.Encoder.
//
// Vectors maps exact input texts to embeddings. Texts not in Vectors get
// Default. ErrFor lists texts whose Embed call fails with Err.
type Encoder struct {
	mu sync.Mutex

	Vectors map[string][]float32
	Default []float32
	Err     error
	ErrFor  map[string]bool

	Calls []string
}

// Embed records the call and returns the configured vector.
func (e *Encoder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, text)
	if e.Err != nil && (e.ErrFor == nil || e.ErrFor[text]) {
		return nil, e.Err
	}
	if v, ok := e.Vectors[text]; ok {
		return v, nil
	}
	return e.Default, nil
}

// CallCount returns the number of Embed calls.
func (e *Encoder) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Calls)
}

var (
	_ nlp.GrammarChecker    = (*Grammar)(nil)
	_ nlp.SentimentAnalyzer = (*Sentiment)(nil)
	_ nlp.Encoder           = (*Encoder)(nil)
)
