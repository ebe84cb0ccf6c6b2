// Package llm implements the optional LLM contact-extraction fallback used
// by the enricher when selector-based extraction finds nothing on a detail
// page. Disabled unless a provider is configured; its output is merged under
// the same never-overwrite rule as selector output.
package llm

import "context"

// Provider is a minimal completion interface over an LLM backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends a prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults. The provider is disabled unless
// explicitly set.
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 256,
	}
}

const contactSystemPrompt = "You extract contact details from the visible text of a school's profile page. " +
	"Respond with a single JSON object {\"phone\": \"...\", \"website\": \"...\"} and nothing else. " +
	"Use an empty string for any field that is not present in the text. Never invent values."
