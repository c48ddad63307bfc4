package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search"
)

const defaultBaseURL = "https://api.tavily.com/search"

// Tavily 的 country 参数只接受英文国家名
var countryNames = map[string]string{
	"ro": "romania",
	"md": "moldova",
	"hu": "hungary",
	"bg": "bulgaria",
}

// Client Tavily API 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建 Tavily 客户端，baseURL 为空时使用官方地址
func NewClient(apiKey, baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: t},
	}
}

var _ search.Searcher = (*Client)(nil)

// SearchRequest Tavily 请求体
type SearchRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	Topic          string   `json:"topic"`
	MaxResults     int      `json:"max_results,omitempty"`
	Country        string   `json:"country,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

func newSearchRequest(req *search.Request) SearchRequest {
	n := req.MaxResults
	if n <= 0 {
		n = 10
	}
	// Tavily 最多返回 20 条
	if n > 20 {
		n = 20
	}
	return SearchRequest{
		Query:          req.Query,
		SearchDepth:    "basic",
		Topic:          "general",
		MaxResults:     n,
		Country:        countryNames[req.Country],
		ExcludeDomains: req.ExcludeDomains,
	}
}

// Search 将统一请求转换为 Tavily 请求，站点排除通过 exclude_domains 传递
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	payload, err := json.Marshal(newSearchRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily api error (status %d): %s", res.StatusCode, string(body))
	}

	return parseResponse(body), nil
}

// parseResponse 读取 results 数组，content 作为摘要
func parseResponse(body []byte) *search.Response {
	resp := &search.Response{}
	if !gjson.ValidBytes(body) {
		return resp
	}
	gjson.GetBytes(body, "results").ForEach(func(_, item gjson.Result) bool {
		link := item.Get("url").String()
		if link == "" {
			return true
		}
		resp.Results = append(resp.Results, search.Result{
			Title:   item.Get("title").String(),
			Link:    link,
			Snippet: item.Get("content").String(),
		})
		return true
	})
	return resp
}
