package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator 通过 Google GenAI SDK 调用 Gemini
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator 创建 Gemini 生成器
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is missing")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: modelName}, nil
}

var _ Generator = (*GeminiGenerator)(nil)

// Generate implements Generator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}
