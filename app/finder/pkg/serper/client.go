package serper

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

const defaultBaseURL = "https://google.serper.dev/search"

// Client Serper.dev API 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Serper 客户端，baseURL 为空时使用官方地址
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

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchRequest Serper 请求体
type SearchRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl,omitempty"`
	HL  string `json:"hl,omitempty"`
	Num int    `json:"num,omitempty"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	payload, err := json.Marshal(SearchRequest{
		Q:   req.Query,
		GL:  req.Country,
		HL:  req.Language,
		Num: req.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
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
		return nil, fmt.Errorf("serper api error (status %d): %s", res.StatusCode, string(body))
	}

	return parseResponse(body), nil
}

// parseResponse 容忍缺失或残缺的 organic 字段，按空结果处理
func parseResponse(body []byte) *search.Response {
	resp := &search.Response{}
	if !gjson.ValidBytes(body) {
		return resp
	}
	organic := gjson.GetBytes(body, "organic")
	if !organic.IsArray() {
		return resp
	}
	organic.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		resp.Results = append(resp.Results, search.Result{
			Title:   item.Get("title").String(),
			Link:    item.Get("link").String(),
			Snippet: item.Get("snippet").String(),
		})
		return true
	})
	return resp
}
