package nlp

import (
	"context"
	"sync"
)

// SerializeGrammar wraps g so that at most one Check runs at a time.
func SerializeGrammar(g GrammarChecker) GrammarChecker {
	return &serialGrammar{inner: g}
}

type serialGrammar struct {
	mu    sync.Mutex
	inner GrammarChecker
}

func (s *serialGrammar) Check(ctx context.Context, text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Check(ctx, text)
}

// SerializeSentiment wraps a so that at most one Polarity runs at a time.
func SerializeSentiment(a SentimentAnalyzer) SentimentAnalyzer {
	return &serialSentiment{inner: a}
}

type serialSentiment struct {
	mu    sync.Mutex
	inner SentimentAnalyzer
}

func (s *serialSentiment) Polarity(ctx context.Context, text string) (Polarity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Polarity(ctx, text)
}

// SerializeEncoder wraps e so that at most one Embed runs at a time.
func SerializeEncoder(e Encoder) Encoder {
	return &serialEncoder{inner: e}
}

type serialEncoder struct {
	mu    sync.Mutex
	inner Encoder
}

func (s *serialEncoder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Embed(ctx, text)
}
