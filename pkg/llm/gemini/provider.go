package gemini

import (
	"context"
	"fmt"

	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

var _ llm.LLMProvider = &GeminiProvider{}
var _ llm.VisionProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:    client,
		ModelName: modelName,
	}, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	cfg := &genai.GenerateContentConfig{}
	temp := float32(options.Temperature)
	cfg.Temperature = &temp
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(options.MaxTokens)
	}

	// Gemini takes system instructions separately from the turn list.
	var contents []*genai.Content
	for _, msg := range history {
		switch msg.Role {
		case "system":
			cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: msg.Content}}}
		case "assistant", "model":
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	result, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return result.Text(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *GeminiProvider) ExtractImage(ctx context.Context, image []byte, mimeType string, prompt string, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.1,
	}
	for _, opt := range opts {
		opt(options)
	}

	cfg := &genai.GenerateContentConfig{}
	temp := float32(options.Temperature)
	cfg.Temperature = &temp
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(options.MaxTokens)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			},
		},
	}

	result, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini vision request failed: %w", err)
	}
	return result.Text(), nil
}
