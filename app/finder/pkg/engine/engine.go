package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/llm"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/logger"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/query"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/report"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search/factory"
)

var (
	// ErrSearchUnavailable 未配置搜索服务
	ErrSearchUnavailable = errors.New("search service is not configured")
	// ErrGeneratorUnavailable 未配置生成式服务
	ErrGeneratorUnavailable = errors.New("generative service is not configured")
	// ErrSearchFailed 搜索服务调用失败
	ErrSearchFailed = errors.New("search failed")
	// ErrEmptySelection 至少需要一个分类和一项规格
	ErrEmptySelection = errors.New("select at least one category and one field")
)

const (
	// 上游每次请求的结果数，本地过滤前
	upstreamResults = 10
	// 摘要短于该长度时抓取正文
	minSnippetLen = 200
	maxExcerptLen = 1000

	defaultFetchTimeout = 30 * time.Second
)

// Fetcher 抓取页面并返回可读正文
type Fetcher func(ctx context.Context, url string) (string, error)

// Engine 核心处理引擎
type Engine struct {
	cfg       *config.Config
	catalogue *catalogue.Catalogue
	searcher  search.Searcher
	generator llm.Generator
	analyzer  *analysis.Analyzer
	fetch     Fetcher
	now       func() time.Time
}

// Option 覆盖引擎的默认依赖，测试中注入替身
type Option func(*Engine)

// WithSearcher 使用指定的搜索实现
func WithSearcher(s search.Searcher) Option {
	return func(e *Engine) { e.searcher = s }
}

// WithGenerator 使用指定的生成器
func WithGenerator(g llm.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithFetcher 使用指定的正文抓取函数
func WithFetcher(f Fetcher) Option {
	return func(e *Engine) { e.fetch = f }
}

// WithClock 使用指定的时钟
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine 创建引擎实例。
// 缺少密钥的服务只记录警告，对应功能在调用时返回 ErrSearchUnavailable / ErrGeneratorUnavailable。
func NewEngine(ctx context.Context, cfg *config.Config, cat *catalogue.Catalogue, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if cat == nil {
		var err error
		if cat, err = catalogue.Default(); err != nil {
			return nil, fmt.Errorf("加载规格目录失败: %w", err)
		}
	}

	e := &Engine{
		cfg:       cfg,
		catalogue: cat,
		fetch:     fetchReadable(fetchTimeout(cfg)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.searcher == nil {
		searcher, err := factory.NewSearcher(cfg)
		if err != nil {
			logger.Log.Warnf("搜索服务不可用 [%s]: %v", cfg.Search.Provider, err)
		} else {
			e.searcher = searcher
		}
	}
	if e.generator == nil {
		generator, err := llm.NewGenerator(ctx, cfg)
		if err != nil {
			logger.Log.Warnf("生成式服务不可用 [%s]: %v", cfg.LLM.Provider, err)
		} else {
			e.generator = generator
		}
	}
	if e.generator != nil {
		e.analyzer = analysis.NewAnalyzer(e.generator, cat)
	}
	return e, nil
}

func fetchTimeout(cfg *config.Config) time.Duration {
	if cfg.Search.FetchTimeout > 0 {
		return time.Duration(cfg.Search.FetchTimeout) * time.Second
	}
	return defaultFetchTimeout
}

func fetchReadable(timeout time.Duration) Fetcher {
	return func(_ context.Context, url string) (string, error) {
		article, err := readability.FromURL(url, timeout)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

// Status 外部服务就绪状态
type Status struct {
	Search            bool   `json:"search"`
	SearchProvider    string `json:"search_provider"`
	Generator         bool   `json:"generator"`
	GeneratorProvider string `json:"generator_provider"`
}

// Status 返回外部服务就绪状态
func (e *Engine) Status() Status {
	return Status{
		Search:            e.searcher != nil,
		SearchProvider:    e.cfg.Search.Provider,
		Generator:         e.generator != nil,
		GeneratorProvider: e.cfg.LLM.Provider,
	}
}

// Catalogue 规格目录
func (e *Engine) Catalogue() *catalogue.Catalogue {
	return e.catalogue
}

// Meta 文档标题和页脚
func (e *Engine) Meta() report.Meta {
	return report.Meta{Title: e.cfg.Report.Title, Footer: e.cfg.Report.Footer}
}

func (e *Engine) checkSelection(sel catalogue.Selection) error {
	if sel.Empty() {
		return ErrEmptySelection
	}
	return e.catalogue.Validate(sel)
}

// Specs 每个分类一张规格表
func (e *Engine) Specs(sel catalogue.Selection) (*report.Document, error) {
	if err := e.checkSelection(sel); err != nil {
		return nil, err
	}
	return report.Assemble(e.catalogue, sel, e.Meta(), e.now()), nil
}

// Compare 规格 × 分类 对比矩阵
func (e *Engine) Compare(sel catalogue.Selection) (*report.Comparison, error) {
	if err := e.checkSelection(sel); err != nil {
		return nil, err
	}
	return report.Compare(e.catalogue, sel), nil
}

// QueryOptions 构造查询的输入
type QueryOptions struct {
	Selection catalogue.Selection `json:"selection"`
	Filters   query.Filters       `json:"filters"`
	Term      string              `json:"term"`
	Optimize  bool                `json:"optimize"`
}

// QueryResult 最终查询以及改写情况
type QueryResult struct {
	Query     string `json:"query"`
	Optimized bool   `json:"optimized"`
	// Notice 改写未生效时给用户的提示
	Notice string `json:"notice,omitempty"`
}

// BuildQuery 拼装查询，按需交给生成式服务改写
func (e *Engine) BuildQuery(ctx context.Context, opts QueryOptions) (*QueryResult, error) {
	if err := e.catalogue.Validate(opts.Selection); err != nil {
		return nil, err
	}
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	built := query.Build(e.catalogue, opts.Selection, opts.Filters, opts.Term)
	res := &QueryResult{Query: built}
	if !opts.Optimize {
		return res, nil
	}
	if e.generator == nil {
		res.Notice = ErrGeneratorUnavailable.Error()
		return res, nil
	}

	optimized, err := query.Optimize(ctx, e.generator, built)
	if err != nil {
		logger.Log.Warnf("查询改写失败，使用原查询: %v", err)
		res.Notice = err.Error()
		return res, nil
	}
	res.Query = optimized
	res.Optimized = optimized != built
	return res, nil
}

// SearchOptions 搜索输入
type SearchOptions struct {
	QueryOptions
	// Enrich 为摘要过短的结果抓取正文片段
	Enrich bool `json:"enrich"`
}

// SearchResult 过滤后的本地结果
type SearchResult struct {
	QueryResult
	// Total 本地过滤前的上游结果数
	Total   int             `json:"total"`
	Results []search.Result `json:"results"`
}

// Search 构造查询、调用搜索服务、只保留本地结果
func (e *Engine) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	if e.searcher == nil {
		return nil, ErrSearchUnavailable
	}
	if err := e.checkSelection(opts.Selection); err != nil {
		return nil, err
	}

	q, err := e.BuildQuery(ctx, opts.QueryOptions)
	if err != nil {
		return nil, err
	}
	// 改写结果可能丢掉本地限制
	q.Query = query.Guard(q.Query)

	logger.Log.Infof("开始搜索: %s", q.Query)
	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:          q.Query,
		MaxResults:     upstreamResults,
		Country:        "ro",
		Language:       "ro",
		ExcludeDomains: query.ExcludedSites,
	})
	if err != nil {
		logger.Log.Errorf("搜索失败: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	local := search.FilterLocal(resp.Results)
	if limit := e.cfg.Search.ResultLimit; limit > 0 && len(local) > limit {
		local = local[:limit]
	}
	logger.Log.Infof("搜索完成: 上游 %d 条, 本地 %d 条", len(resp.Results), len(local))

	if opts.Enrich {
		e.enrich(ctx, local)
	}

	return &SearchResult{QueryResult: *q, Total: len(resp.Results), Results: local}, nil
}

// enrich 并发抓取正文，单条失败只记日志
func (e *Engine) enrich(ctx context.Context, results []search.Result) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.Search.EnrichLimit, 1))

	for i := range results {
		if len(results[i].Snippet) >= minSnippetLen {
			continue
		}
		r := &results[i]
		g.Go(func() error {
			text, err := e.fetch(ctx, r.Link)
			if err != nil {
				logger.Log.Warnf("抓取正文失败 [%s]: %v", r.Link, err)
				return nil
			}
			text = strings.Join(strings.Fields(text), " ")
			if len(text) <= len(r.Snippet) {
				return nil
			}
			r.Excerpt = truncate(text, maxExcerptLen)
			return nil
		})
	}
	_ = g.Wait()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Analyze 对选中的规格做生成式分析；服务失败时结果文本为固定致歉信息
func (e *Engine) Analyze(ctx context.Context, sel catalogue.Selection, t analysis.Type) (*analysis.Result, error) {
	if e.analyzer == nil {
		return nil, ErrGeneratorUnavailable
	}
	if err := e.checkSelection(sel); err != nil {
		return nil, err
	}
	logger.Log.Infof("开始分析 [%s]: %s", t, strings.Join(sel.Categories, ", "))
	return e.analyzer.Analyze(ctx, sel, t), nil
}

// AnalysisDocument 把分析结果组装成导出文档
func (e *Engine) AnalysisDocument(res *analysis.Result) *report.AnalysisDocument {
	return report.NewAnalysisDocument(e.catalogue, res, e.Meta(), e.now())
}
