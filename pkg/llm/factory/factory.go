package factory

import (
	"context"
	"fmt"

	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm/gemini"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm/ollama"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm/openrouter"
)

// Settings carries the provider credentials the factory may need.
// Only the fields for the selected provider have to be set.
type Settings struct {
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GeminiAPIKey      string
	OllamaBaseURL     string
}

func NewLLMProvider(ctx context.Context, providerType, modelName string, s Settings) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		baseURL := s.OpenRouterBaseURL
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		return openrouter.NewOpenRouterProvider(s.OpenRouterAPIKey, baseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(ctx, s.GeminiAPIKey, modelName)
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewVisionProvider builds a provider for image transcription.
func NewVisionProvider(ctx context.Context, providerType, modelName string, s Settings) (llm.VisionProvider, error) {
	switch providerType {
	case "openrouter":
		baseURL := s.OpenRouterBaseURL
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		return openrouter.NewOpenRouterProvider(s.OpenRouterAPIKey, baseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(ctx, s.GeminiAPIKey, modelName)
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", providerType)
	}
}
