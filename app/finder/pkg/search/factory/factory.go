package factory

import (
	"fmt"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/searxng"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/serper"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	switch cfg.Search.Provider {
	case "", "serper":
		if cfg.Search.Serper.APIKey == "" {
			return nil, fmt.Errorf("serper api key is missing")
		}
		return serper.NewClient(cfg.Search.Serper.APIKey, cfg.Search.Serper.BaseURL, cfg.Search.Serper.Timeout), nil

	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey, cfg.Search.Tavily.BaseURL, cfg.Search.Tavily.Timeout), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Search.Provider)
	}
}
