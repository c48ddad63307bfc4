package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// WriteCSV 扁平表：分类, 规格, 值
func WriteCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnCategory, ColumnField, ColumnValue}); err != nil {
		return err
	}
	for _, t := range doc.Tables {
		for _, r := range t.Rows {
			if err := cw.Write([]string{t.Category, r.Field, r.Value}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV 对比表：规格 + 每个分类一列
func WriteComparisonCSV(w io.Writer, c *Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Specificație"}, c.Categories...)); err != nil {
		return err
	}
	for _, r := range c.Rows {
		if err := cw.Write(append([]string{r.Field}, r.Values...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

// WriteText 对齐的纯文本报告
func WriteText(w io.Writer, doc *Document) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\nGenerat la: %s\n", doc.Title, doc.Timestamp())
	for _, t := range doc.Tables {
		fmt.Fprintf(&buf, "\n%s\n", t.Category)
		tw := newTable(&buf, []string{ColumnField, ColumnValue})
		for _, r := range t.Rows {
			tw.Append([]string{r.Field, r.Value})
		}
		tw.Render()
	}
	fmt.Fprintf(&buf, "\n%s\n", doc.Footer)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteComparisonText 对齐的纯文本对比表
func WriteComparisonText(w io.Writer, c *Comparison) error {
	var buf bytes.Buffer
	tw := newTable(&buf, append([]string{ColumnField}, c.Categories...))
	for _, r := range c.Rows {
		tw.Append(append([]string{r.Field}, r.Values...))
	}
	tw.Render()
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteAnalysisText 纯文本分析导出
func WriteAnalysisText(w io.Writer, doc *AnalysisDocument) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", doc.Heading)
	fmt.Fprintf(&sb, "Data: %s\n\n", doc.Timestamp())
	fmt.Fprintf(&sb, "## Specificații analizate\n\n%s\n\n", doc.Specs)
	fmt.Fprintf(&sb, "## Analiză AI\n\n%s", doc.Text)
	_, err := io.WriteString(w, sb.String())
	return err
}

// fold 去掉变音符号，ș -> s, ă -> a；PDF 核心字体只覆盖 cp1252
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func slug(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(fold(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case r == ' ' || r == '_':
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
