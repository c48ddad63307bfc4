package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// Generator 单轮 prompt 进、文本出，不保留会话状态
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 适配普通函数
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type limited struct {
	next    Generator
	limiter *rate.Limiter
}

// WithLimiter 每次调用前等待令牌；limiter 为 nil 时原样返回
func WithLimiter(g Generator, limiter *rate.Limiter) Generator {
	if limiter == nil {
		return g
	}
	return &limited{next: g, limiter: limiter}
}

func (l *limited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.next.Generate(ctx, prompt)
}

// NewLimiter 按 RPM 和突发量 QPS 构造限流器
func NewLimiter(rpm, qps int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	if qps <= 0 {
		qps = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)
}
