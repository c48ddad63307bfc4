package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
)

// NewGenerator 根据配置创建生成器，并挂上限流器
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	var (
		g   Generator
		err error
	)

	switch cfg.LLM.Provider {
	case "", "gemini":
		g, err = NewGeminiGenerator(ctx, cfg.LLM.APIKey, cfg.LLM.Model)

	case "openai":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("llm api key is missing")
		}
		if cfg.LLM.Model == "" {
			return nil, fmt.Errorf("llm model is missing")
		}
		g, err = NewOpenAIGenerator(ctx, cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model,
			time.Duration(cfg.LLM.Timeout)*time.Second)

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithLimiter(g, NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)), nil
}
