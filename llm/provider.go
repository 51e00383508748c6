package llm

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/appconfig"
	"go.uber.org/zap"
)

// ProvideClient builds the generation client named by the llm_provider key.
func ProvideClient(cfg *appconfig.AppConfig) (LLMClient, error) {
	var (
		client LLMClient
		err    error
	)

	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic", "claude":
		client, err = NewAnthropicClient(cfg.LLMModel)
	case "groq":
		client, err = NewGroqClient(cfg.LLMModel)
	case "ollama":
		client, err = NewOllamaClient(cfg.OllamaHost, cfg.LLMModel)
	case "openrouter":
		client, err = NewOpenRouterClient(cfg.LLMModel)
	case "openai":
		client, err = NewOpenAIClient(cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Generation client ready",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", client.GetModel()))
	return client, nil
}

// ProvideOptions turns the generation settings of cfg into per-call options.
func ProvideOptions(cfg *appconfig.AppConfig) []LLMOption {
	return []LLMOption{
		WithTemperature(cfg.Temperature),
		WithMaxTokens(cfg.MaxTokens),
	}
}
