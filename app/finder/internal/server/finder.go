package server

import (
	"context"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/conf"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/engine"
	finderLogger "github.com/iWorld-y/monitor_finder/app/finder/pkg/logger"
)

// NewFinderEngine 初始化 finder 引擎
func NewFinderEngine(c *conf.Finder, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)

	cfg := ToConfig(c)
	// 密钥缺失时占位符解析为空串，这里再读一次环境变量
	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()

	// 初始化日志
	if err := finderLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init finder logger: %v", err)
		_ = finderLogger.InitLogger("info", "") // 降级处理
	}

	cat, err := catalogue.Default()
	if err != nil {
		helper.Errorf("Failed to load catalogue: %v", err)
		return nil, nil, err
	}

	// 初始化核心引擎
	eng, err := engine.NewEngine(context.Background(), cfg, cat)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	st := eng.Status()
	helper.Infof("finder engine ready: search=%s(%v) llm=%s(%v)",
		st.SearchProvider, st.Search, st.GeneratorProvider, st.Generator)

	cleanup := func() {
		helper.Info("Cleaning up finder engine")
	}
	return eng, cleanup, nil
}

// ToConfig 将 internal/conf.Finder 转换为 pkg/config.Config，未配置的段保持零值
func ToConfig(c *conf.Finder) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		return cfg
	}

	if l := c.Llm; l != nil {
		cfg.LLM = config.LLMConfig{
			Provider: l.Provider,
			BaseURL:  l.BaseUrl,
			APIKey:   l.ApiKey,
			Model:    l.Model,
			Timeout:  int(l.Timeout),
		}
	}
	if s := c.Search; s != nil {
		cfg.Search.Provider = s.Provider
		cfg.Search.ResultLimit = int(s.ResultLimit)
		cfg.Search.EnrichLimit = int(s.EnrichLimit)
		cfg.Search.FetchTimeout = int(s.FetchTimeout)
		if s.Serper != nil {
			cfg.Search.Serper = config.SerperConfig{
				APIKey:  s.Serper.ApiKey,
				BaseURL: s.Serper.BaseUrl,
				Timeout: int(s.Serper.Timeout),
			}
		}
		if s.Tavily != nil {
			cfg.Search.Tavily = config.TavilyConfig{
				APIKey:  s.Tavily.ApiKey,
				BaseURL: s.Tavily.BaseUrl,
				Timeout: int(s.Tavily.Timeout),
			}
		}
		if s.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{
				BaseURL: s.Searxng.BaseUrl,
				Timeout: int(s.Searxng.Timeout),
			}
		}
	}
	if r := c.Report; r != nil {
		cfg.Report = config.ReportConfig{Title: r.Title, Footer: r.Footer}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	if cc := c.Concurrency; cc != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
	}
	return cfg
}
