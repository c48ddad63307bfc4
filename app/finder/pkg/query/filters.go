package query

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidFilter 过滤条件不在固定选项中
var ErrInvalidFilter = errors.New("invalid filter")

// 价格滑块范围 (RON)
const (
	MinPrice = 500
	MaxPrice = 5000
)

// Option 下拉选项：展示文本与写入查询的词
type Option struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

var (
	Resolutions = []Option{
		{Label: "Full HD (1920x1080)", Token: "Full HD"},
		{Label: "2K/QHD (2560x1440)", Token: "2K/QHD"},
		{Label: "4K/UHD (3840x2160)", Token: "4K/UHD"},
	}
	Panels        = []string{"IPS", "VA", "TN", "OLED"}
	RefreshRates  = []string{"60 Hz", "75 Hz", "100 Hz", "120 Hz", "144 Hz", "165 Hz", "240 Hz"}
	ResponseTimes = []string{"1 ms", "2 ms", "3 ms", "4 ms", "5+ ms"}
	Features      = []string{
		"Adaptive-Sync", "G-Sync", "FreeSync", "HDR", "USB-C", "Boxe încorporate",
		"Pivot", "Înălțime ajustabilă", "VESA",
	}
	// Shops 可指定的本地商店域名
	Shops = []string{
		"emag.ro", "pcgarage.ro", "altex.ro", "mediagalaxy.ro", "nod.ro", "cel.ro",
		"probitz.ro", "bsp-shop.ro", "iiyama-eshop.ro", "evomag.ro", "flanco.ro",
		"itgalaxy.ro", "forit.ro", "vexio.ro", "dc-shop.ro",
		"soliton.ro", "picxelit.ro", "badabum.ro", "powerup.ro", "citgrup.ro",
	}
)

// PriceRange 价格区间，闭区间
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Filters 搜索过滤条件，空字符串表示不限
type Filters struct {
	Resolution   string      `json:"resolution,omitempty"`
	Panel        string      `json:"panel,omitempty"`
	RefreshRate  string      `json:"refresh_rate,omitempty"`
	ResponseTime string      `json:"response_time,omitempty"`
	Price        *PriceRange `json:"price,omitempty"`
	Features     []string    `json:"features,omitempty"`
	Shop         string      `json:"shop,omitempty"`
}

// Validate 检查所有非空过滤条件
func (f Filters) Validate() error {
	if f.Resolution != "" {
		if _, ok := resolutionToken(f.Resolution); !ok {
			return fmt.Errorf("%w: resolution %q", ErrInvalidFilter, f.Resolution)
		}
	}
	if f.Panel != "" && !slices.Contains(Panels, f.Panel) {
		return fmt.Errorf("%w: panel %q", ErrInvalidFilter, f.Panel)
	}
	if f.RefreshRate != "" && !slices.Contains(RefreshRates, f.RefreshRate) {
		return fmt.Errorf("%w: refresh rate %q", ErrInvalidFilter, f.RefreshRate)
	}
	if f.ResponseTime != "" && !slices.Contains(ResponseTimes, f.ResponseTime) {
		return fmt.Errorf("%w: response time %q", ErrInvalidFilter, f.ResponseTime)
	}
	for _, feat := range f.Features {
		if !slices.Contains(Features, feat) {
			return fmt.Errorf("%w: feature %q", ErrInvalidFilter, feat)
		}
	}
	if f.Shop != "" && !slices.Contains(Shops, f.Shop) {
		return fmt.Errorf("%w: shop %q", ErrInvalidFilter, f.Shop)
	}
	if p := f.Price; p != nil {
		if p.Min < MinPrice || p.Max > MaxPrice || p.Min > p.Max {
			return fmt.Errorf("%w: price %d-%d outside %d-%d", ErrInvalidFilter, p.Min, p.Max, MinPrice, MaxPrice)
		}
	}
	return nil
}

// Tokens 非默认的规格过滤词：分辨率、面板、刷新率、响应时间、特性
func (f Filters) Tokens() []string {
	var tokens []string
	if tok, ok := resolutionToken(f.Resolution); ok {
		tokens = append(tokens, tok)
	}
	for _, v := range []string{f.Panel, f.RefreshRate, f.ResponseTime} {
		if v != "" {
			tokens = append(tokens, v)
		}
	}
	return append(tokens, f.Features...)
}

// resolutionToken 接受选项文本或查询词本身
func resolutionToken(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	for _, o := range Resolutions {
		if v == o.Label || v == o.Token {
			return o.Token, true
		}
	}
	return "", false
}
