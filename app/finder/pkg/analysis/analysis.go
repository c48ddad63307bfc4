package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/llm"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/logger"
)

// Apology 调用失败时返回给用户的固定文本
const Apology = "Nu s-a putut realiza analiza cu Gemini. Verificați cheia API si conexiunea la internet."

// Type 分析类型
type Type string

const (
	General      Type = "general"
	Gaming       Type = "gaming"
	Productivity Type = "productivity"
	PriceQuality Type = "price_quality"
)

// Types 按界面顺序列出全部分析类型
var Types = []Type{General, Gaming, Productivity, PriceQuality}

var labels = map[Type]string{
	General:      "Analiză generală",
	Gaming:       "Comparație pentru gaming",
	Productivity: "Recomandare pentru productivitate",
	PriceQuality: "Raport calitate-preț",
}

var hints = map[Type]string{
	Gaming:       "Concentrează-te pe aspectele importante pentru gaming: rata de refresh, timpul de răspuns, tehnologiile adaptive sync.",
	Productivity: "Concentrează-te pe aspectele importante pentru productivitate: rezoluție, dimensiune, ergonomie, conectivitate.",
	PriceQuality: "Evaluează raportul calitate-preț și oferă recomandări de monitoare cu specificații similare la prețuri competitive.",
}

// ParseType 接受类型标识或界面文本，空串视为 general
func ParseType(s string) (Type, error) {
	if s == "" {
		return General, nil
	}
	for _, t := range Types {
		if s == string(t) || s == labels[t] {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown analysis type %q", s)
}

// Label 界面文本
func (t Type) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return labels[General]
}

// Hint 附加在规格后的侧重点说明，general 为空
func (t Type) Hint() string {
	return hints[t]
}

// Sections 分析结果固定包含的四个小节
var Sections = []string{
	"Cele mai importante caracteristici",
	"Avantajele acestor specificatii",
	"Potentiale utilizari recomandate (gaming, design, office, etc.)",
	"Recomandari de produse care ar putea indeplini aceste specificatii",
}

// FormatSpecs 按 "分类:\n- 规格: 值" 块拼装选中的规格
func FormatSpecs(cat *catalogue.Catalogue, sel catalogue.Selection) string {
	var sb strings.Builder
	for _, category := range sel.Categories {
		fmt.Fprintf(&sb, "\n\n%s:\n", category)
		for _, field := range sel.Fields {
			if v, ok := cat.Value(category, field); ok {
				fmt.Fprintf(&sb, "- %s: %s\n", field, v)
			}
		}
	}
	return sb.String()
}

// Subject 分析主题，例如 "Analiză generală pentru Monitor 24 inch, Monitor 27 inch"
func Subject(t Type, categories []string) string {
	return fmt.Sprintf("%s pentru %s", t.Label(), strings.Join(categories, ", "))
}

// BuildPrompt 组装发给生成式服务的完整 prompt
func BuildPrompt(subject, specs string, t Type) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analizeaza urmatoarele specificatii pentru %s:\n\n", subject)
	sb.WriteString(specs)
	sb.WriteString("\n")
	sb.WriteString(t.Hint())
	sb.WriteString("\n\nOfera-mi o analiza detaliata care sa includa:\n")
	for i, s := range Sections {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}
	return sb.String()
}

// Result 一次分析的完整上下文，导出时使用
type Result struct {
	Type       Type
	Categories []string
	Fields     []string
	Specs      string
	Text       string
	Failed     bool
}

// Analyzer 生成式分析封装
type Analyzer struct {
	gen llm.Generator
	cat *catalogue.Catalogue
}

// NewAnalyzer 创建分析器
func NewAnalyzer(gen llm.Generator, cat *catalogue.Catalogue) *Analyzer {
	return &Analyzer{gen: gen, cat: cat}
}

// Analyze 调用生成式服务；失败时文本为 Apology，不返回错误
func (a *Analyzer) Analyze(ctx context.Context, sel catalogue.Selection, t Type) *Result {
	specs := FormatSpecs(a.cat, sel)
	res := &Result{
		Type:       t,
		Categories: append([]string(nil), sel.Categories...),
		Fields:     append([]string(nil), sel.Fields...),
		Specs:      specs,
	}

	prompt := BuildPrompt(Subject(t, sel.Categories), specs, t)
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Log.Errorf("生成式分析失败 [%s]: %v", t, err)
		res.Text = Apology
		res.Failed = true
		return res
	}
	res.Text = text
	return res
}
