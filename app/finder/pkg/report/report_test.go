package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/catalogue"
)

var (
	testMeta = Meta{Title: "Raport Specificatii Monitoare", Footer: "© 2025 Monitor Finder"}
	testNow  = time.Date(2025, 3, 14, 9, 5, 7, 0, time.UTC)
)

func mustCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	c, err := catalogue.Default()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAssemble_Example(t *testing.T) {
	doc := Assemble(mustCatalogue(t), catalogue.Selection{
		Categories: []string{"Monitor 24 inch"},
		Fields:     []string{"Rezolutie"},
	}, testMeta, testNow)

	want := []Table{{Category: "Monitor 24 inch", Rows: []Row{{Field: "Rezolutie", Value: "1920x1080 Full HD"}}}}
	if diff := cmp.Diff(want, doc.Tables); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
	if doc.Timestamp() != "14-03-2025 09:05:07" {
		t.Errorf("Timestamp() = %q", doc.Timestamp())
	}
}

func TestAssemble_SelectionOrderAndMissing(t *testing.T) {
	doc := Assemble(mustCatalogue(t), catalogue.Selection{
		Categories: []string{"Monitor 32 inch", "Monitor 27 inch"},
		Fields:     []string{"Rata refresh", "Pivotare", "Diagonala ecran"},
	}, testMeta, testNow)

	want := []Table{
		{Category: "Monitor 32 inch", Rows: []Row{
			{Field: "Rata refresh", Value: "60Hz minim"},
			{Field: "Diagonala ecran", Value: "32 inch"},
		}},
		{Category: "Monitor 27 inch", Rows: []Row{
			{Field: "Rata refresh", Value: "100 Hz minim"},
			{Field: "Pivotare", Value: "90°"},
			{Field: "Diagonala ecran", Value: "27 inch"},
		}},
	}
	if diff := cmp.Diff(want, doc.Tables); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
	for _, tbl := range doc.Tables {
		for _, r := range tbl.Rows {
			if r.Value == "" || r.Value == NotAvailable {
				t.Errorf("placeholder row emitted: %+v", r)
			}
		}
	}
}

func TestCompare(t *testing.T) {
	c := Compare(mustCatalogue(t), catalogue.Selection{
		Categories: []string{"Monitor 24 inch", "Monitor 32 inch"},
		Fields:     []string{"Pivotare", "Luminozitate"},
	})
	want := &Comparison{
		Categories: []string{"Monitor 24 inch", "Monitor 32 inch"},
		Rows: []ComparisonRow{
			{Field: "Pivotare", Values: []string{"90°", NotAvailable}},
			{Field: "Luminozitate", Values: []string{"250 cd/mp", "350 cd/mp"}},
		},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := WriteComparisonCSV(&buf, c); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	wantCSV := [][]string{
		{"Specificație", "Monitor 24 inch", "Monitor 32 inch"},
		{"Pivotare", "90°", "N/A"},
		{"Luminozitate", "250 cd/mp", "350 cd/mp"},
	}
	if diff := cmp.Diff(wantCSV, records); diff != "" {
		t.Errorf("comparison CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	doc := Assemble(mustCatalogue(t), catalogue.Selection{
		Categories: []string{"Monitor 24 inch", "Monitor 32 inch"},
		Fields:     []string{"Pivotare", "Conectivitate"},
	}, testMeta, testNow)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, doc); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Categorie", "Specificatie", "Valoare"},
		{"Monitor 24 inch", "Pivotare", "90°"},
		{"Monitor 24 inch", "Conectivitate", "1 x HDMI; 1 x DisplayPort; USB HUB 2 x USB 3.2"},
		{"Monitor 32 inch", "Conectivitate", "1 x HDMI; 1 x Display Port; USB-C X1; USB HUB 2xUSB V 3.2; USB -c Dock 1 x (power delivery 65W, LAN, USB V 3.2)"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	doc := Assemble(mustCatalogue(t), catalogue.Selection{
		Categories: []string{"Monitor 27 inch"},
		Fields:     []string{"Rezolutie", "Culori"},
	}, testMeta, testNow)

	var buf bytes.Buffer
	if err := WriteText(&buf, doc); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Raport Specificatii Monitoare",
		"Generat la: 14-03-2025 09:05:07",
		"Monitor 27 inch",
		"Specificatie",
		"Minim 1920x1080 Full HD",
		"16.7 milioane",
		"© 2025 Monitor Finder",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestWritePDF(t *testing.T) {
	c := mustCatalogue(t)
	doc := Assemble(c, catalogue.Selection{
		Categories: c.CategoryNames(),
		Fields:     c.FieldNames(),
	}, testMeta, testNow)

	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWritePDF_DegreeValues(t *testing.T) {
	c := mustCatalogue(t)
	for _, field := range []string{"Pivotare", "Unghi vizualizare", "Inclinare", "Rotire"} {
		t.Run(field, func(t *testing.T) {
			doc := Assemble(c, catalogue.Selection{
				Categories: []string{"Monitor 24 inch"},
				Fields:     []string{field},
			}, testMeta, testNow)

			var buf bytes.Buffer
			if err := WritePDF(&buf, doc); err != nil {
				t.Fatalf("WritePDF() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Error("output is not a PDF")
			}
		})
	}
}

func TestPDFWriterSplit(t *testing.T) {
	w := newPDFWriter("footer")
	w.font("", 10, colorBlack)

	if diff := cmp.Diff([]string{"178\xb0/178\xb0"}, w.split("178°/178°", valueColWidth)); diff != "" {
		t.Errorf("split() mismatch (-want +got):\n%s", diff)
	}

	long := strings.Repeat("Rotire 90° ", 30)
	lines := w.split(long, 120)
	if len(lines) < 2 {
		t.Fatalf("split() = %d lines, want wrapping", len(lines))
	}
	for _, l := range lines {
		if strings.Contains(l, "\uFFFD") {
			t.Errorf("line %q is not cp1252", l)
		}
	}
	if got := strings.Count(strings.Join(lines, " "), "\xb0"); got != 30 {
		t.Errorf("degree signs = %d, want 30", got)
	}
}

func analysisResult() *analysis.Result {
	return &analysis.Result{
		Type:       analysis.General,
		Categories: []string{"Monitor 24 inch"},
		Fields:     []string{"Rezolutie", "Pivotare"},
		Specs:      "\n\nMonitor 24 inch:\n- Rezolutie: 1920x1080 Full HD\n- Pivotare: 90°\n",
		Text:       "**Caracteristici**: rezoluție Full HD\n\nAvantaje: pivotare",
	}
}

func TestNewAnalysisDocument(t *testing.T) {
	doc := NewAnalysisDocument(mustCatalogue(t), analysisResult(), testMeta, testNow)

	if doc.Title != "Analiza detaliata Monitor 24 inch" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Heading != "Analiză generală pentru Monitor 24 inch" {
		t.Errorf("Heading = %q", doc.Heading)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("len(Sections) = %d", len(doc.Sections))
	}
	if doc.Sections[0].Body != "**Caracteristici**: rezoluție Full HD" || doc.Sections[1].Body != "Avantaje: pivotare" {
		t.Errorf("sections = %+v", doc.Sections[:2])
	}
	for _, s := range doc.Sections[2:] {
		if s.Body != sectionFallback {
			t.Errorf("section %q body = %q, want fallback", s.Heading, s.Body)
		}
	}
	wantRows := []Row{{Field: "Rezolutie", Value: "1920x1080 Full HD"}, {Field: "Pivotare", Value: "90°"}}
	if diff := cmp.Diff(wantRows, doc.Rows); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteAnalysisText(t *testing.T) {
	doc := NewAnalysisDocument(mustCatalogue(t), analysisResult(), testMeta, testNow)

	var buf bytes.Buffer
	if err := WriteAnalysisText(&buf, doc); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# Analiză generală pentru Monitor 24 inch\n\nData: 14-03-2025 09:05:07\n\n## Specificații analizate\n\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.HasSuffix(out, "## Analiză AI\n\n"+analysisResult().Text) {
		t.Errorf("analysis text not verbatim:\n%s", out)
	}
}

func TestWriteAnalysisPDF(t *testing.T) {
	doc := NewAnalysisDocument(mustCatalogue(t), analysisResult(), testMeta, testNow)

	var buf bytes.Buffer
	if err := WriteAnalysisPDF(&buf, doc); err != nil {
		t.Fatalf("WriteAnalysisPDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestAnalysisFileName(t *testing.T) {
	tests := []struct {
		typ  analysis.Type
		ext  string
		want string
	}{
		{analysis.General, "pdf", "analiza_analiza_generala.pdf"},
		{analysis.Gaming, "txt", "analiza_comparatie_pentru_gaming.txt"},
		{analysis.PriceQuality, "pdf", "analiza_raport_calitate-pret.pdf"},
	}
	for _, tt := range tests {
		if got := AnalysisFileName(tt.typ, tt.ext); got != tt.want {
			t.Errorf("AnalysisFileName(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	if got := fold("Înălțime ajustabilă 178°"); got != "Inaltime ajustabila 178°" {
		t.Errorf("fold() = %q", got)
	}
}
