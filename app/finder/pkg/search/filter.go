package search

import (
	"net/url"
	"strings"
)

// LocalSuffix 本地顶级域名
const LocalSuffix = ".ro"

// LocalRetailers 已知本地零售商名称片段，按子串匹配域名
var LocalRetailers = []string{
	"emag", "pcgarage", "altex", "mediagalaxy", "cel", "evomag",
	"itgalaxy", "forit", "vexio", "dc-shop",
	"flanco", "nod", "probitz", "bsp-shop", "iiyama-eshop",
	"soliton", "picxelit", "badabum",
}

// Host 取链接的主机名，小写且不含端口；无法解析时返回空串
func Host(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsLocal 域名以本地后缀结尾，或包含已知零售商片段
func IsLocal(link string) bool {
	host := Host(link)
	if host == "" {
		return false
	}
	if strings.HasSuffix(host, LocalSuffix) {
		return true
	}
	for _, frag := range LocalRetailers {
		if strings.Contains(host, frag) {
			return true
		}
	}
	return false
}

// FilterLocal 保留本地结果，不改变顺序
func FilterLocal(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if IsLocal(r.Link) {
			out = append(out, r)
		}
	}
	return out
}
