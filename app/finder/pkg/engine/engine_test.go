package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/config"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/llm"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/query"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/search"
)

type fakeSearcher struct {
	mu      sync.Mutex
	reqs    []*search.Request
	results []search.Result
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &search.Response{Results: f.results}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
		WithFetcher(func(context.Context, string) (string, error) { return "", errors.New("offline") }),
	}, opts...)
	e, err := NewEngine(context.Background(), testConfig(), nil, opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

var sel24 = catalogue.Selection{Categories: []string{"Monitor 24 inch"}, Fields: []string{"Rezolutie"}}

func TestStatus_Degraded(t *testing.T) {
	e := newTestEngine(t)
	want := Status{Search: false, SearchProvider: "serper", Generator: false, GeneratorProvider: "gemini"}
	if diff := cmp.Diff(want, e.Status()); diff != "" {
		t.Errorf("Status() mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.Search(context.Background(), SearchOptions{}); !errors.Is(err, ErrSearchUnavailable) {
		t.Errorf("Search() error = %v, want ErrSearchUnavailable", err)
	}
	if _, err := e.Analyze(context.Background(), sel24, analysis.General); !errors.Is(err, ErrGeneratorUnavailable) {
		t.Errorf("Analyze() error = %v, want ErrGeneratorUnavailable", err)
	}
}

func TestSpecs(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Specs(sel24)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Raport Specificatii Monitoare" || doc.Timestamp() != "02-01-2025 03:04:05" {
		t.Errorf("doc header = %q / %q", doc.Title, doc.Timestamp())
	}
	if got := doc.Tables[0].Rows[0].Value; got != "1920x1080 Full HD" {
		t.Errorf("row value = %q", got)
	}

	if _, err := e.Specs(catalogue.Selection{Categories: []string{"Monitor 24 inch"}}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Specs(no fields) error = %v", err)
	}
	if _, err := e.Compare(catalogue.Selection{Categories: []string{"TV"}, Fields: []string{"Rezolutie"}}); !errors.Is(err, catalogue.ErrUnknownCategory) {
		t.Errorf("Compare(unknown) error = %v", err)
	}
}

func TestBuildQuery_Optimize(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		err           error
		wantOptimized bool
		wantNotice    bool
	}{
		{"replaced", "monitor 24 inch full hd emag", nil, true, false},
		{"empty reply keeps query", "", nil, false, false},
		{"whitespace reply keeps query", "  \n\t", nil, false, false},
		{"error keeps query", "", errors.New("quota"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := llm.GeneratorFunc(func(context.Context, string) (string, error) { return tt.reply, tt.err })
			e := newTestEngine(t, WithGenerator(gen))

			res, err := e.BuildQuery(context.Background(), QueryOptions{Selection: sel24, Optimize: true})
			if err != nil {
				t.Fatal(err)
			}
			if res.Optimized != tt.wantOptimized {
				t.Errorf("Optimized = %v, want %v", res.Optimized, tt.wantOptimized)
			}
			if tt.wantOptimized && res.Query != tt.reply {
				t.Errorf("Query = %q, want %q", res.Query, tt.reply)
			}
			if !tt.wantOptimized && !strings.HasPrefix(res.Query, "(Monitor 24 inch) Rezolutie 1920x1080 Full HD site:.ro &lr=lang_ro") {
				t.Errorf("Query = %q, want assembled query", res.Query)
			}
			if (res.Notice != "") != tt.wantNotice {
				t.Errorf("Notice = %q", res.Notice)
			}
		})
	}
}

func TestBuildQuery_InvalidFilter(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.BuildQuery(context.Background(), QueryOptions{Selection: sel24, Filters: query.Filters{Panel: "CRT"}})
	if !errors.Is(err, query.ErrInvalidFilter) {
		t.Errorf("BuildQuery() error = %v, want ErrInvalidFilter", err)
	}
}

func TestSearch_FiltersLocalAndLimits(t *testing.T) {
	fs := &fakeSearcher{results: []search.Result{
		{Title: "a", Link: "https://www.emag.ro/a"},
		{Title: "b", Link: "https://www.amazon.com/b"},
		{Title: "c", Link: "https://pcgarage.ro/c"},
		{Title: "d", Link: "https://shop.cel.ro/d"},
		{Title: "e", Link: "https://altex.ro/e"},
		{Title: "f", Link: "https://example.de/f"},
		{Title: "g", Link: "https://evomag.ro/g"},
		{Title: "h", Link: "https://flanco.ro/h"},
	}}
	e := newTestEngine(t, WithSearcher(fs))

	res, err := e.Search(context.Background(), SearchOptions{QueryOptions: QueryOptions{Selection: sel24}})
	if err != nil {
		t.Fatal(err)
	}

	var titles []string
	for _, r := range res.Results {
		titles = append(titles, r.Title)
	}
	if diff := cmp.Diff([]string{"a", "c", "d", "e", "g"}, titles); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if res.Total != 8 {
		t.Errorf("Total = %d, want 8", res.Total)
	}

	req := fs.reqs[0]
	if req.Query != res.Query || req.Country != "ro" || req.Language != "ro" {
		t.Errorf("request = %+v", req)
	}
	if len(req.ExcludeDomains) != len(query.ExcludedSites) {
		t.Errorf("ExcludeDomains = %d entries", len(req.ExcludeDomains))
	}
}

func TestSearch_OptimizedQueryStaysLocal(t *testing.T) {
	fs := &fakeSearcher{}
	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) { return "monitor 24 inch full hd ieftin", nil })
	e := newTestEngine(t, WithSearcher(fs), WithGenerator(gen))

	res, err := e.Search(context.Background(), SearchOptions{QueryOptions: QueryOptions{Selection: sel24, Optimize: true}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Optimized {
		t.Error("Optimized = false, want true")
	}

	sent := fs.reqs[0].Query
	if !strings.HasPrefix(sent, "monitor 24 inch full hd ieftin site:.ro &lr=lang_ro -site:amazon.com") {
		t.Errorf("sent query = %q", sent)
	}
	for _, site := range query.ExcludedSites {
		if !strings.Contains(sent, "-site:"+site) {
			t.Errorf("sent query missing -site:%s", site)
		}
	}
	if res.Query != sent {
		t.Errorf("reported query %q differs from sent %q", res.Query, sent)
	}
}

func TestSearch_EmptySelection(t *testing.T) {
	fs := &fakeSearcher{}
	e := newTestEngine(t, WithSearcher(fs))

	for _, sel := range []catalogue.Selection{
		{},
		{Categories: []string{"Monitor 24 inch"}},
		{Fields: []string{"Rezolutie"}},
	} {
		if _, err := e.Search(context.Background(), SearchOptions{QueryOptions: QueryOptions{Selection: sel}}); !errors.Is(err, ErrEmptySelection) {
			t.Errorf("Search(%+v) error = %v, want ErrEmptySelection", sel, err)
		}
	}
	if len(fs.reqs) != 0 {
		t.Errorf("searcher called %d times", len(fs.reqs))
	}
}

func TestSearch_Failure(t *testing.T) {
	e := newTestEngine(t, WithSearcher(&fakeSearcher{err: errors.New("status 403")}))
	res, err := e.Search(context.Background(), SearchOptions{QueryOptions: QueryOptions{Selection: sel24}})
	if !errors.Is(err, ErrSearchFailed) || res != nil {
		t.Errorf("Search() = %v, %v; want nil, ErrSearchFailed", res, err)
	}
}

func TestSearch_Enrich(t *testing.T) {
	long := strings.Repeat("descriere ", 40)
	fs := &fakeSearcher{results: []search.Result{
		{Title: "short", Link: "https://emag.ro/1", Snippet: "Monitor"},
		{Title: "long", Link: "https://emag.ro/2", Snippet: long},
		{Title: "broken", Link: "https://emag.ro/3", Snippet: "x"},
	}}
	fetch := func(_ context.Context, url string) (string, error) {
		if strings.HasSuffix(url, "/3") {
			return "", errors.New("timeout")
		}
		return "  Monitor   IPS\n\n24 inch  ", nil
	}
	e := newTestEngine(t, WithSearcher(fs), WithFetcher(fetch))

	res, err := e.Search(context.Background(), SearchOptions{QueryOptions: QueryOptions{Selection: sel24}, Enrich: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Monitor IPS 24 inch", "", ""}
	for i, r := range res.Results {
		if r.Excerpt != want[i] {
			t.Errorf("result %d excerpt = %q, want %q", i, r.Excerpt, want[i])
		}
	}
}

func TestAnalyze(t *testing.T) {
	var prompt string
	gen := llm.GeneratorFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "Analiza", nil
	})
	e := newTestEngine(t, WithGenerator(gen))

	res, err := e.Analyze(context.Background(), sel24, analysis.Gaming)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "Analiza" || res.Failed {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(prompt, "- Rezolutie: 1920x1080 Full HD") {
		t.Errorf("prompt missing spec line:\n%s", prompt)
	}

	doc := e.AnalysisDocument(res)
	if doc.Timestamp() != "02-01-2025 03:04:05" || len(doc.Sections) != 4 {
		t.Errorf("document = %+v", doc)
	}
}

func TestAnalyze_FailureReturnsApology(t *testing.T) {
	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) { return "", errors.New("boom") })
	e := newTestEngine(t, WithGenerator(gen))

	res, err := e.Analyze(context.Background(), sel24, analysis.General)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != analysis.Apology || !res.Failed {
		t.Errorf("result = %+v", res)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("ăîșț", 2); got != "ăî..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
}
