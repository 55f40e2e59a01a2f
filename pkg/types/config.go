package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against SerpAPI.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the SerpAPI endpoint (default https://serpapi.com).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Engine is the SerpAPI engine parameter (default "google").
	Engine string `json:"engine" yaml:"engine"`

	// MaxResults is the number of organic results requested (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// CompletionBackend identifies the hosted model family used for synthesis.
type CompletionBackend string

const (
	BackendGemini CompletionBackend = "gemini"
	BackendClaude CompletionBackend = "claude"
)

// AIConfig holds settings for the completion stage.
type AIConfig struct {
	// Backend selects the provider: gemini or claude.
	Backend CompletionBackend `json:"backend" yaml:"backend"`

	// Model is the AI model identifier (e.g. "gemini-1.5-flash-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the selected backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint; empty uses the SDK default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (default 0.1).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length where the backend requires it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// AssistantConfig groups all stage configurations.
type AssistantConfig struct {
	Search     SearchConfig `json:"search" yaml:"search"`
	Completion AIConfig     `json:"completion" yaml:"completion"`
	Log        LogConfig    `json:"log" yaml:"log"`
}
