package searxng

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search"
)

// 部分实例会拦截没有浏览器 UA 的请求
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client 自建 SearXNG 实例客户端
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient 创建 SearXNG 客户端，baseURL 指向实例根地址
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/search",
		client:   &http.Client{Timeout: t},
	}
}

var _ search.Searcher = (*Client)(nil)

func (c *Client) searchURL(req *search.Request) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", "general")
	q.Set("safesearch", "0")
	if req.Language != "" {
		q.Set("language", req.Language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search 执行搜索，SearXNG 直接理解查询中的 site: 与 -site: 语法
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	target, err := c.searchURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body))
	}

	resp := &search.Response{}
	gjson.GetBytes(body, "results").ForEach(func(_, item gjson.Result) bool {
		resp.Results = append(resp.Results, search.Result{
			Title:   item.Get("title").String(),
			Link:    item.Get("url").String(),
			Snippet: item.Get("content").String(),
		})
		return req.MaxResults <= 0 || len(resp.Results) < req.MaxResults
	})
	return resp, nil
}
