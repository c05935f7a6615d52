// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/transcript-scorer/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "GrammarIssues")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Judge only the text below, do not invent content.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// GrammarIssuesSchema returns the proofreading schema for a transcript
// written in the given language (e.g. "en-US").
func GrammarIssuesSchema(language string) (ExtractionSchema, error) {
	description, err := prompts.Render(prompts.GrammarCheck, map[string]string{"Language": language})
	if err != nil {
		return ExtractionSchema{}, err
	}
	return ExtractionSchema{
		Name:        "GrammarIssues",
		Description: description,
		Fields: []SchemaField{
			{Name: "issues", Type: "[]{\"fragment\": string, \"reason\": string}", Description: "One entry per error, empty when the text is correct", Required: true},
			{Name: "count", Type: "int", Description: "Total number of errors, equal to the length of issues", Required: true},
		},
	}, nil
}

// SentimentPolaritySchema returns the polarity schema for a transcript.
func SentimentPolaritySchema() (ExtractionSchema, error) {
	description, err := prompts.Get(prompts.SentimentPolarity)
	if err != nil {
		return ExtractionSchema{}, err
	}
	return ExtractionSchema{
		Name:        "SentimentPolarity",
		Description: description,
		Fields: []SchemaField{
			{Name: "pos", Type: "float", Description: "Positive proportion in [0, 1]", Required: true},
			{Name: "neg", Type: "float", Description: "Negative proportion in [0, 1]", Required: true},
			{Name: "neu", Type: "float", Description: "Neutral proportion in [0, 1]", Required: true},
			{Name: "compound", Type: "float", Description: "Overall polarity in [-1, 1]", Required: true},
		},
	}, nil
}
