package report

import (
	"strings"
	"time"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
)

// TimeLayout 文档中的生成时间格式
const TimeLayout = "02-01-2006 15:04:05"

// 表头
const (
	ColumnField    = "Specificatie"
	ColumnValue    = "Valoare"
	ColumnCategory = "Categorie"
	NotAvailable   = "N/A"
)

// Meta 文档标题和页脚，来自配置
type Meta struct {
	Title  string
	Footer string
}

// Row 表格中的一行
type Row struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Table 单个分类的规格表
type Table struct {
	Category string `json:"category"`
	Rows     []Row  `json:"rows"`
}

// Document 规格报告
type Document struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Tables      []Table   `json:"tables"`
	Footer      string    `json:"footer"`
}

// Timestamp 格式化后的生成时间
func (d *Document) Timestamp() string {
	return d.GeneratedAt.Format(TimeLayout)
}

// Assemble 每个分类一张表；行顺序跟随用户选择，目录中没有的规格直接省略
func Assemble(cat *catalogue.Catalogue, sel catalogue.Selection, meta Meta, now time.Time) *Document {
	doc := &Document{
		Title:       meta.Title,
		GeneratedAt: now,
		Footer:      meta.Footer,
		Tables:      make([]Table, 0, len(sel.Categories)),
	}
	for _, category := range sel.Categories {
		t := Table{Category: category, Rows: []Row{}}
		for _, field := range sel.Fields {
			if v, ok := cat.Value(category, field); ok {
				t.Rows = append(t.Rows, Row{Field: field, Value: v})
			}
		}
		doc.Tables = append(doc.Tables, t)
	}
	return doc
}

// ComparisonRow 对比表的一行：一项规格在各分类下的值
type ComparisonRow struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Comparison 规格 × 分类 对比矩阵
type Comparison struct {
	Categories []string        `json:"categories"`
	Rows       []ComparisonRow `json:"rows"`
}

// Compare 构造对比矩阵，缺失值显示为 N/A
func Compare(cat *catalogue.Catalogue, sel catalogue.Selection) *Comparison {
	cmp := &Comparison{
		Categories: append([]string(nil), sel.Categories...),
		Rows:       make([]ComparisonRow, 0, len(sel.Fields)),
	}
	for _, field := range sel.Fields {
		row := ComparisonRow{Field: field, Values: make([]string, len(sel.Categories))}
		for i, category := range sel.Categories {
			if v, ok := cat.Value(category, field); ok {
				row.Values[i] = v
			} else {
				row.Values[i] = NotAvailable
			}
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp
}

// Section 分析文档中的一个小节
type Section struct {
	Heading string
	Body    string
}

// 分析文档的固定文案
var (
	analysisHeadings = []string{
		"1. Cele mai importante caracteristici:",
		"2. Avantajele specificatiilor:",
		"3. Potentiale utilizari recomandate:",
		"4. Recomandari de produse care ar putea indeplini aceste specificatii:",
	}
	sectionFallback = "Informatii detaliate vor fi disponibile in analiza completa."
	conclusion      = "In concluzie, specificatiile descriu un monitor versatil si performant, potrivit pentru o gama larga de utilizari, oferind un bun raport calitate-pret. Ajustabilitatea ergonomica si tehnologiile de confort vizual sunt puncte forte importante."
)

// AnalysisDocument 导出的 AI 分析文档
type AnalysisDocument struct {
	Title       string
	Heading     string
	GeneratedAt time.Time
	Intro       string
	Sections    []Section
	Specs       string
	Rows        []Row
	Conclusion  string
	Footer      string
	Text        string
	Type        analysis.Type
}

// Timestamp 格式化后的生成时间
func (d *AnalysisDocument) Timestamp() string {
	return d.GeneratedAt.Format(TimeLayout)
}

// NewAnalysisDocument 把分析文本按空行拆到四个固定小节，不足的小节使用占位说明
func NewAnalysisDocument(cat *catalogue.Catalogue, res *analysis.Result, meta Meta, now time.Time) *AnalysisDocument {
	cats := strings.Join(res.Categories, ", ")
	doc := &AnalysisDocument{
		Title:       "Analiza detaliata " + cats,
		Heading:     analysis.Subject(res.Type, res.Categories),
		GeneratedAt: now,
		Intro:       "Specificatiile prezentate descriu un monitor " + cats + " cu caracteristici solide, potrivit pentru o gama larga de utilizari.",
		Specs:       res.Specs,
		Conclusion:  conclusion,
		Footer:      meta.Footer,
		Text:        res.Text,
		Type:        res.Type,
	}

	parts := splitParagraphs(res.Text)
	for i, h := range analysisHeadings {
		body := sectionFallback
		if i < len(parts) {
			body = parts[i]
		}
		doc.Sections = append(doc.Sections, Section{Heading: h, Body: body})
	}

	for _, s := range cat.Specs(catalogue.Selection{Categories: res.Categories, Fields: res.Fields}) {
		doc.Rows = append(doc.Rows, Row{Field: s.Field, Value: s.Value})
	}
	return doc
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnalysisFileName 例如 analiza_analiza_generala.pdf
func AnalysisFileName(t analysis.Type, ext string) string {
	return "analiza_" + slug(t.Label()) + "." + ext
}
