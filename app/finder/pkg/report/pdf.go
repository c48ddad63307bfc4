package report

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// 版式，单位 pt
const (
	fieldColWidth = 200.0
	valueColWidth = 300.0
	lineHeight    = 14.0
	cellPadding   = 4.0
)

type rgb struct{ r, g, b int }

var (
	colorPurple   = rgb{128, 0, 128}
	colorBlue     = rgb{0, 0, 255}
	colorDarkBlue = rgb{0, 0, 139}
	colorGrey     = rgb{128, 128, 128}
	colorBlack    = rgb{0, 0, 0}
	colorLavender = rgb{230, 230, 250}
)

// pdfWriter 封装 fpdf，负责编码转换和常用样式
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFWriter(footer string) *pdfWriter {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 60)

	w := &pdfWriter{pdf: pdf}
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	w.tr = func(s string) string { return cp1252(fold(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-40)
		w.font("", 8, colorGrey)
		pdf.CellFormat(0, 10, w.tr(footer), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return w
}

func (w *pdfWriter) font(style string, size float64, c rgb) {
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.SetTextColor(c.r, c.g, c.b)
}

func (w *pdfWriter) heading(text string, size float64, c rgb) {
	w.font("B", size, c)
	w.pdf.MultiCell(0, size+6, w.tr(text), "", "L", false)
	w.pdf.Ln(size / 2)
}

func (w *pdfWriter) paragraph(text string) {
	w.font("", 10, colorBlack)
	w.pdf.MultiCell(0, lineHeight, w.tr(plain(text)), "", "L", false)
}

func (w *pdfWriter) table(rows []Row) {
	pdf := w.pdf

	w.font("B", 12, colorDarkBlue)
	pdf.SetFillColor(colorLavender.r, colorLavender.g, colorLavender.b)
	pdf.SetDrawColor(0, 0, 0)
	pdf.CellFormat(fieldColWidth, 24, w.tr(ColumnField), "1", 0, "C", true, 0, "")
	pdf.CellFormat(valueColWidth, 24, w.tr(ColumnValue), "1", 1, "C", true, 0, "")

	for _, r := range rows {
		w.tableRow(r)
	}
}

// tableRow 按两列中较高的一列决定行高，必要时先换页
func (w *pdfWriter) tableRow(r Row) {
	pdf := w.pdf

	w.font("B", 10, colorBlack)
	fieldLines := w.split(r.Field, fieldColWidth-2*cellPadding)
	w.font("", 10, colorBlack)
	valueLines := w.split(r.Value, valueColWidth-2*cellPadding)

	n := max(len(fieldLines), len(valueLines), 1)
	h := float64(n)*lineHeight + cellPadding

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	pdf.Rect(x, y, fieldColWidth, h, "D")
	pdf.Rect(x+fieldColWidth, y, valueColWidth, h, "D")

	w.font("B", 10, colorBlack)
	w.lines(fieldLines, x, y, fieldColWidth)
	w.font("", 10, colorBlack)
	w.lines(valueLines, x+fieldColWidth, y, valueColWidth)

	pdf.SetXY(x, y+h)
}

// split 按当前字体把文本折成多行，返回 cp1252 编码的行。
// SplitText 按 rune 查字宽表，因此先把每个 cp1252 字节当作一个 rune 传入，再还原为字节。
func (w *pdfWriter) split(s string, width float64) []string {
	enc := w.tr(s)
	wide := make([]rune, len(enc))
	for i := 0; i < len(enc); i++ {
		wide[i] = rune(enc[i])
	}

	lines := w.pdf.SplitText(string(wide), width)
	for i, l := range lines {
		b := make([]byte, 0, len(l))
		for _, r := range l {
			b = append(b, byte(r))
		}
		lines[i] = string(b)
	}
	return lines
}

func (w *pdfWriter) lines(lines []string, x, y, width float64) {
	w.pdf.SetXY(x, y+cellPadding/2)
	for _, l := range lines {
		w.pdf.CellFormat(width, lineHeight, l, "", 2, "L", false, 0, "")
	}
}

func (w *pdfWriter) output(out io.Writer) error {
	if err := w.pdf.Error(); err != nil {
		return err
	}
	return w.pdf.Output(out)
}

// WritePDF 分页的可打印规格报告
func WritePDF(out io.Writer, doc *Document) error {
	w := newPDFWriter(doc.Footer)

	w.heading(doc.Title, 18, colorPurple)
	w.font("", 10, colorGrey)
	w.pdf.CellFormat(0, 12, w.tr("Generat la: "+doc.Timestamp()), "", 1, "L", false, 0, "")
	w.pdf.Ln(24)

	for _, t := range doc.Tables {
		w.heading(t.Category, 14, colorBlue)
		w.table(t.Rows)
		w.pdf.Ln(20)
	}

	return w.output(out)
}

// WriteAnalysisPDF 分析报告 PDF
func WriteAnalysisPDF(out io.Writer, doc *AnalysisDocument) error {
	w := newPDFWriter(doc.Footer)

	w.heading(doc.Title, 18, colorPurple)
	w.font("", 10, colorGrey)
	w.pdf.CellFormat(0, 12, w.tr("Generat la: "+doc.Timestamp()), "", 1, "L", false, 0, "")
	w.pdf.Ln(24)

	w.paragraph(doc.Intro)
	w.pdf.Ln(12)

	for _, s := range doc.Sections {
		w.heading(s.Heading, 14, colorBlue)
		w.paragraph(s.Body)
		w.pdf.Ln(16)
	}

	w.heading("Specificatii tehnice:", 12, colorDarkBlue)
	if len(doc.Rows) > 0 {
		w.table(doc.Rows)
	}
	w.pdf.Ln(20)
	w.paragraph(doc.Conclusion)

	return w.output(out)
}

// plain 去掉常见的 markdown 标记，PDF 中按纯文本排版
func plain(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, "# ")
		if strings.HasPrefix(strings.TrimSpace(l), "* ") {
			lines[i] = "- " + strings.TrimPrefix(strings.TrimSpace(l), "* ")
		}
	}
	return strings.Join(lines, "\n")
}
