package appconfig

import (
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	LLMProvider string  `env:"LLM-PROVIDER" ini:"llm_provider"`
	LLMModel    string  `env:"LLM-MODEL" ini:"llm_model"`
	Temperature float64 `ini:"temperature"`
	MaxTokens   int     `ini:"max_tokens"`
	OllamaHost  string  `env:"OLLAMA-HOST" ini:"ollama_host"`

	FetchTimeoutSec      int    `ini:"fetch_timeout_sec"`
	GenerationTimeoutSec int    `ini:"generation_timeout_sec"`
	FetchRetries         int    `ini:"fetch_retries"`
	UserAgent            string `ini:"user_agent"`
}

const (
	DefaultProvider             = "anthropic"
	DefaultFetchTimeoutSec      = 30
	DefaultGenerationTimeoutSec = 120
	DefaultFetchRetries         = 3
	DefaultTemperature          = 0.2
	DefaultMaxTokens            = 4096
)

// DefaultModels is the model used for a provider when llm_model is empty.
var DefaultModels = map[string]string{
	"anthropic":  "claude-sonnet-4-20250514",
	"claude":     "claude-sonnet-4-20250514",
	"groq":       "llama-3.3-70b-versatile",
	"ollama":     "llama3.1",
	"openrouter": "google/gemini-2.5-flash",
	"openai":     "gpt-5-mini",
}

// NewAppConfig returns a config holding every numeric default. Loading an ini
// file over it only replaces the keys the file sets, so an explicit zero
// (temperature 0, no fetch retries, no timeout) is kept.
func NewAppConfig() *AppConfig {
	return &AppConfig{
		Temperature:          DefaultTemperature,
		MaxTokens:            DefaultMaxTokens,
		FetchTimeoutSec:      DefaultFetchTimeoutSec,
		GenerationTimeoutSec: DefaultGenerationTimeoutSec,
		FetchRetries:         DefaultFetchRetries,
	}
}

// ApplyDefaults normalises the provider name and fills the provider, model
// and max tokens when they are unset.
func (c *AppConfig) ApplyDefaults() {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	if c.LLMProvider == "" {
		c.LLMProvider = DefaultProvider
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultModels[c.LLMProvider]
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
}

func (c *AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func (c *AppConfig) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSec) * time.Second
}
