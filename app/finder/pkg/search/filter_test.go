package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsLocal(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://www.emag.ro/monitor-lg/pd/123", true},
		{"https://altex.ro/monitor", true},
		{"https://WWW.PCGARAGE.RO/monitoare/", true},
		{"https://shop.example.ro:8443/x", true},
		{"https://www.amazon.de/dp/B0", false},
		{"https://www.bestbuy.com/site/monitor", false},
		{"https://cel-shop.com/monitor", true}, // 片段匹配
		{"not a url", false},
		{"", false},
		{"https://romania.com/", false},
	}
	for _, tt := range tests {
		if got := IsLocal(tt.link); got != tt.want {
			t.Errorf("IsLocal(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

func TestFilterLocal(t *testing.T) {
	in := []Result{
		{Title: "a", Link: "https://www.amazon.com/a"},
		{Title: "b", Link: "https://www.emag.ro/b"},
		{Title: "c", Link: "https://newegg.com/c"},
		{Title: "d", Link: "https://flanco.ro/d"},
		{Title: "e", Link: "https://www.evomag.ro/e"},
	}
	want := []Result{in[1], in[3], in[4]}

	got := FilterLocal(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterLocal() mismatch (-want +got):\n%s", diff)
	}

	// 过滤是纯谓词，对已过滤结果再次过滤不变
	if diff := cmp.Diff(got, FilterLocal(got)); diff != "" {
		t.Errorf("FilterLocal() not idempotent (-first +second):\n%s", diff)
	}
}

func TestFilterLocal_Empty(t *testing.T) {
	if got := FilterLocal(nil); len(got) != 0 {
		t.Errorf("FilterLocal(nil) = %v", got)
	}
}
