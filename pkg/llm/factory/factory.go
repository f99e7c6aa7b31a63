package factory

import (
	"fmt"

	"ai-advisor-be/pkg/llm"
	"ai-advisor-be/pkg/llm/deepseek"
	"ai-advisor-be/pkg/llm/ollama"
)

// NewLLMProvider builds a provider from config values.
// Supported: "deepseek" (any OpenAI-compatible endpoint), "ollama".
func NewLLMProvider(providerName, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerName {
	case "deepseek", "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("llm provider %q requires an API key", providerName)
		}
		return deepseek.NewDeepseekProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", providerName)
	}
}
