// Package llm provides LLM configuration and the Gemini client used by the
// generative language adapters (grammar, sentiment and embeddings).
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, counting, polarity
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: proofreading, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for tasks that need deeper reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultEmbeddingModel is the Gemini text embedding model.
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithEmbeddingModel returns a new Config using the given embedding model.
// An empty name leaves the config unchanged.
func (c *Config) WithEmbeddingModel(model string) *Config {
	if model == "" {
		return c
	}
	newConfig := c.clone()
	newConfig.EmbeddingModel = model
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider:       c.Provider,
		Models:         make(map[ModelTier]string, len(c.Models)),
		EmbeddingModel: c.EmbeddingModel,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return newConfig
}
