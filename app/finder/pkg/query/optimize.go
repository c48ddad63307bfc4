package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/llm"
)

const optimizePrompt = `Optimizează următoarea interogare de căutare pentru a găsi monitoare care îndeplinesc aceste specificații:
%s

Returnează doar interogarea optimizată, fără explicații suplimentare.`

// Optimize 让生成式服务改写查询。
// 非空回复整体替换原查询；空白回复或出错时保留原查询，错误仅供调用方提示。
func Optimize(ctx context.Context, g llm.Generator, q string) (string, error) {
	if g == nil {
		return q, nil
	}
	out, err := g.Generate(ctx, fmt.Sprintf(optimizePrompt, q))
	if err != nil {
		return q, fmt.Errorf("optimize query: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return q, nil
	}
	return out, nil
}
