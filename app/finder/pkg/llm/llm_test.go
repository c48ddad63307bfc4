package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
)

func TestWithLimiter_PassesThrough(t *testing.T) {
	var calls int
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "echo: " + prompt, nil
	})

	lg := WithLimiter(g, rate.NewLimiter(rate.Inf, 1))
	got, err := lg.Generate(context.Background(), "salut")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "echo: salut" || calls != 1 {
		t.Errorf("Generate() = %q after %d calls", got, calls)
	}
}

func TestWithLimiter_NilLimiter(t *testing.T) {
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) { return "", nil })
	if got := WithLimiter(g, nil); got == nil {
		t.Fatal("WithLimiter(nil) returned nil")
	}
}

func TestWithLimiter_ContextCancelled(t *testing.T) {
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Error("generator must not be called after the wait fails")
		return "", nil
	})
	// 桶已空，下一个令牌要一小时后才产生
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := WithLimiter(g, limiter).Generate(ctx, "x"); err == nil {
		t.Error("expected wait error")
	}
}

func TestNewLimiter(t *testing.T) {
	if NewLimiter(0, 1) != nil {
		t.Error("rpm 0 should disable limiting")
	}
	l := NewLimiter(60, 0)
	if l == nil || l.Burst() != 1 || l.Limit() != 1 {
		t.Errorf("NewLimiter(60, 0) = %+v", l)
	}
}

func TestNewGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		llm  config.LLMConfig
		want string
	}{
		{"gemini without key", config.LLMConfig{Provider: "gemini"}, "api key is missing"},
		{"openai without key", config.LLMConfig{Provider: "openai", Model: "m"}, "api key is missing"},
		{"openai without model", config.LLMConfig{Provider: "openai", APIKey: "k"}, "model is missing"},
		{"unknown", config.LLMConfig{Provider: "claude"}, "unknown llm provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(context.Background(), &config.Config{LLM: tt.llm})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewGenerator() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestGeneratorFunc_Error(t *testing.T) {
	boom := errors.New("boom")
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) { return "", boom })
	if _, err := g.Generate(context.Background(), ""); !errors.Is(err, boom) {
		t.Errorf("error = %v", err)
	}
}
