// Package prompts holds the LLM instructions used by the remote scorers.
// They live in scoring.json, embedded at compile time and keyed by Key.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Key names one prompt in scoring.json.
type Key string

const (
	// GrammarCheck asks for a list of grammar issues. Takes {{.Language}}.
	GrammarCheck Key = "grammar-check"
	// SentimentPolarity asks for positive, negative and neutral proportions.
	SentimentPolarity Key = "sentiment-polarity"
)

//go:embed scoring.json
var scoringJSON []byte

var loadScoring = sync.OnceValues(func() (map[Key]string, error) {
	var p map[Key]string
	if err := json.Unmarshal(scoringJSON, &p); err != nil {
		return nil, fmt.Errorf("failed to parse scoring prompts: %w", err)
	}
	return p, nil
})

// Get returns the raw prompt text for key.
func Get(key Key) (string, error) {
	p, err := loadScoring()
	if err != nil {
		return "", err
	}
	text, ok := p[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}
	return text, nil
}

// Render returns the prompt for key with its {{.Field}} placeholders filled
// from data. A placeholder with no value in data is an error.
func Render(key Key, data map[string]string) (string, error) {
	text, err := Get(key)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(string(key)).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", key, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("prompt %q: %w", key, err)
	}
	return sb.String(), nil
}
