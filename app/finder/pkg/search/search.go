package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query          string
	MaxResults     int
	Country        string   // 例如 "ro"
	Language       string   // 例如 "ro"
	ExcludeDomains []string // 支持结构化排除的服务商会使用
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果，顺序即上游的相关度顺序
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Excerpt string `json:"excerpt,omitempty"`
}
