package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatGenerator 基于 eino ChatModel，兼容 OpenAI / DeepSeek / Qwen 等接口
type ChatGenerator struct {
	chatModel model.BaseChatModel
}

// NewChatGenerator 包装已有的 ChatModel
func NewChatGenerator(cm model.BaseChatModel) *ChatGenerator {
	return &ChatGenerator{chatModel: cm}
}

// NewOpenAIGenerator 创建 OpenAI 兼容的生成器
func NewOpenAIGenerator(ctx context.Context, baseURL, apiKey, modelName string, timeout time.Duration) (*ChatGenerator, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatGenerator(cm), nil
}

var _ Generator = (*ChatGenerator)(nil)

// Generate implements Generator
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}
	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
