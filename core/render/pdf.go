// PDF renderer.
// Lays out the Markdown report as a one-page listing sheet using gofpdf.
// Handles headings, list items and paragraphs; that is all the report emits.

package render

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Fichusgg/casa-score-br/core"
)

// PDFRenderer renders an outcome as a PDF listing sheet.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the outcome's Markdown report into PDF bytes.
func (r *PDFRenderer) Render(o core.Outcome) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; the report has accents and "m²".
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdownReport(o), "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(trimmed, "# "))), level)
		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*"):
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(strings.Trim(trimmed, "*")), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips bold markers for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	return strings.TrimSpace(text)
}
