// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the assistant configuration from viper (config
// file, RESEARCH_ASSISTANT_* environment, bound flags), the provider
// credential environment variables, and the secrets directory.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/completion"
	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Viper keys.
const (
	KeyProvider          = "provider"
	KeyModel             = "model"
	KeyTemperature       = "temperature"
	KeyMaxTokens         = "max_tokens"
	KeyMaxResults        = "max_results"
	KeyEngine            = "engine"
	KeyTimeout           = "timeout"
	KeyUserAgent         = "user_agent"
	KeySearchBaseURL     = "search.base_url"
	KeyCompletionBaseURL = "completion.base_url"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"

	KeyGoogleAPIKey    = "google_api_key"
	KeySerpAPIKey      = "serpapi_api_key"
	KeyAnthropicAPIKey = "anthropic_api_key"
)

// Credential environment variables. They are read without the
// RESEARCH_ASSISTANT prefix.
const (
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvSerpAPIKey      = "SERPAPI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Defaults applied when a setting is absent.
const (
	DefaultTemperature = 0.1
	DefaultMaxResults  = 10
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "research-assistant/dev"
)

// ErrMissingCredential is matched by every *MissingCredentialError.
var ErrMissingCredential = errors.New("missing credential")

// MissingCredentialError names the environment variable and secrets file
// that would supply an absent key.
type MissingCredentialError struct {
	EnvVar     string
	SecretFile string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: set %s or add %s to the secrets directory", e.EnvVar, e.SecretFile)
}

// Is reports whether target is ErrMissingCredential.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// Load builds the configuration from v, falling back to secrets for
// credentials that are not set in the environment. It does not check that
// credentials are present; call Validate for that.
func Load(v *viper.Viper, secretValues map[string]string) (types.AssistantConfig, error) {
	if err := bindCredentials(v); err != nil {
		return types.AssistantConfig{}, err
	}

	backend := types.CompletionBackend(v.GetString(KeyProvider))
	if backend == "" {
		backend = types.BackendGemini
	}

	var apiKey, model string
	switch backend {
	case types.BackendGemini:
		apiKey = secretDefault(secretValues, secrets.GoogleAPIKey, v.GetString(KeyGoogleAPIKey))
		model = completion.DefaultGeminiModel
	case types.BackendClaude:
		apiKey = secretDefault(secretValues, secrets.AnthropicAPIKey, v.GetString(KeyAnthropicAPIKey))
		model = completion.DefaultClaudeModel
	default:
		return types.AssistantConfig{}, fmt.Errorf("unsupported provider %q: use gemini or claude", backend)
	}
	if m := v.GetString(KeyModel); m != "" {
		model = m
	}

	temperature := DefaultTemperature
	if v.IsSet(KeyTemperature) {
		temperature = v.GetFloat64(KeyTemperature)
	}
	if temperature < 0 || temperature > 2 {
		return types.AssistantConfig{}, fmt.Errorf("temperature %.2f out of range [0, 2]", temperature)
	}

	maxResults := v.GetInt(KeyMaxResults)
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := v.GetString(KeyUserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return types.AssistantConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: userAgent,
			},
			APIKey:     secretDefault(secretValues, secrets.SerpAPIKey, v.GetString(KeySerpAPIKey)),
			BaseURL:    v.GetString(KeySearchBaseURL),
			Engine:     v.GetString(KeyEngine),
			MaxResults: maxResults,
		},
		Completion: types.AIConfig{
			Backend:     backend,
			Model:       model,
			APIKey:      apiKey,
			BaseURL:     v.GetString(KeyCompletionBaseURL),
			Temperature: temperature,
			MaxTokens:   v.GetInt(KeyMaxTokens),
		},
		Log: types.LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}, nil
}

// Validate reports the first missing credential, search before completion.
func Validate(cfg types.AssistantConfig) error {
	if cfg.Search.APIKey == "" {
		return &MissingCredentialError{EnvVar: EnvSerpAPIKey, SecretFile: secrets.SerpAPIKey}
	}
	if cfg.Completion.APIKey == "" {
		if cfg.Completion.Backend == types.BackendClaude {
			return &MissingCredentialError{EnvVar: EnvAnthropicAPIKey, SecretFile: secrets.AnthropicAPIKey}
		}
		return &MissingCredentialError{EnvVar: EnvGoogleAPIKey, SecretFile: secrets.GoogleAPIKey}
	}
	return nil
}

// Mask shows the first ten characters of a key followed by "...". Keys of
// ten characters or fewer are fully hidden.
func Mask(key string) string {
	r := []rune(key)
	if len(r) <= 10 {
		return "***"
	}
	return string(r[:10]) + "..."
}

// Fields describes cfg for a startup log line with credentials masked.
func Fields(cfg types.AssistantConfig) []zap.Field {
	return []zap.Field{
		zap.String("provider", string(cfg.Completion.Backend)),
		zap.String("model", cfg.Completion.Model),
		zap.Float64("temperature", cfg.Completion.Temperature),
		zap.String("completion_key", Mask(cfg.Completion.APIKey)),
		zap.String("search_key", Mask(cfg.Search.APIKey)),
		zap.Int("max_results", cfg.Search.MaxResults),
		zap.Duration("timeout", cfg.Search.Timeout),
	}
}

func bindCredentials(v *viper.Viper) error {
	for key, env := range map[string]string{
		KeyGoogleAPIKey:    EnvGoogleAPIKey,
		KeySerpAPIKey:      EnvSerpAPIKey,
		KeyAnthropicAPIKey: EnvAnthropicAPIKey,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

// secretDefault returns value when set, otherwise the named secret.
func secretDefault(secretValues map[string]string, name, value string) string {
	if value != "" {
		return value
	}
	return secretValues[name]
}
