package query

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
)

const (
	// LocalSiteToken 未指定商店时限制到本地顶级域名
	LocalSiteToken = "site:.ro"
	// LanguageToken 语言限制
	LanguageToken = "&lr=lang_ro"
)

// ExcludedSites 固定排除的国外零售域名
var ExcludedSites = []string{
	"amazon.com", "ebay.com", "aliexpress.com", "walmart.com", "bestbuy.com",
	"newegg.com", "bhphotovideo.com", "adorama.com", "currys.co.uk", "argos.co.uk",
	"mediamarkt.de", "saturn.de", "fnac.com", "darty.com", "ldlc.com", "otto.de",
	"conrad.de", "verkkokauppa.com", "komplett.no", "elkjop.no", "power.no",
	"coolblue.nl", "bol.com", "mediamarkt.nl", "amazon.co.uk", "amazon.de",
	"amazon.fr", "amazon.it", "amazon.es", "amazon.nl", "amazon.se", "anodos.ru",
	"emag.bg",
}

// Build 拼装搜索查询：分类析取、规格、过滤词、价格、站点、自定义词、语言和排除列表
func Build(cat *catalogue.Catalogue, sel catalogue.Selection, f Filters, term string) string {
	var parts []string

	if len(sel.Categories) > 0 {
		parts = append(parts, "("+strings.Join(sel.Categories, " OR ")+")")
	}
	for _, s := range cat.Specs(sel) {
		parts = append(parts, s.Field+" "+s.Value)
	}

	parts = append(parts, f.Tokens()...)

	if f.Price != nil {
		parts = append(parts, fmt.Sprintf("pret %d-%d RON", f.Price.Min, f.Price.Max))
	}

	if f.Shop != "" {
		parts = append(parts, "site:"+f.Shop)
	} else {
		parts = append(parts, LocalSiteToken)
	}

	if term = strings.TrimSpace(term); term != "" {
		parts = append(parts, term)
	}

	parts = append(parts, LanguageToken)

	return AppendExclusions(strings.Join(parts, " "))
}

// Guard 发送前补齐站点、语言和排除词，改写后的查询同样受限。
// 已有 site: 词时不再追加 site:.ro；对 Build 的结果不做改动。
func Guard(q string) string {
	parts := []string{strings.TrimSpace(q)}
	hasSite, hasLang := false, false
	for _, tok := range strings.Fields(q) {
		switch {
		case strings.HasPrefix(tok, "site:"):
			hasSite = true
		case tok == LanguageToken:
			hasLang = true
		}
	}
	if !hasSite {
		parts = append(parts, LocalSiteToken)
	}
	if !hasLang {
		parts = append(parts, LanguageToken)
	}
	return AppendExclusions(strings.TrimSpace(strings.Join(parts, " ")))
}

// AppendExclusions 追加排除列表中尚未出现的 -site: 词，多次调用结果不变
func AppendExclusions(q string) string {
	present := make(map[string]struct{})
	for _, tok := range strings.Fields(q) {
		present[tok] = struct{}{}
	}

	var sb strings.Builder
	sb.WriteString(q)
	for _, site := range ExcludedSites {
		tok := "-site:" + site
		if _, ok := present[tok]; ok {
			continue
		}
		present[tok] = struct{}{}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
