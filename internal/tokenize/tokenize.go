// Package tokenize normalizes transcript text and splits it into words and sentences.
package tokenize

import (
	"regexp"
	"strings"
)

var (
	// wordPattern matches runs of word characters (letters, digits, underscore).
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	// sentenceBreak matches runs of terminal punctuation.
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
)

// Normalize lower-cases the text. Phrase matching is done against this form.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// Words returns the word tokens of the normalized text.
func Words(text string) []string {
	return wordPattern.FindAllString(Normalize(text), -1)
}

// Sentences splits the normalized text on runs of '.', '!' and '?'.
// Fragments are trimmed and empty ones dropped.
func Sentences(text string) []string {
	parts := sentenceBreak.Split(Normalize(text), -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Counts returns the word and sentence counts. Blank input yields (0, 0).
func Counts(text string) (words, sentences int) {
	if IsBlank(text) {
		return 0, 0
	}
	return len(Words(text)), len(Sentences(text))
}
