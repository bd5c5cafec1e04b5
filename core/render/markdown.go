// Package render provides output renderers for ingestion outcomes.
// This file implements the Markdown report, which the PDF renderer also
// builds on.
package render

import (
	"fmt"
	"strings"

	"github.com/Fichusgg/casa-score-br/core"
)

// MarkdownRenderer writes a human-readable listing report.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the report as Markdown bytes.
func (r *MarkdownRenderer) Render(o core.Outcome) ([]byte, error) {
	return []byte(markdownReport(o)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func markdownReport(o core.Outcome) string {
	var b strings.Builder

	switch {
	case o.OK():
		l := o.Listing
		fmt.Fprintf(&b, "# %s\n\n", l.Title)
		if o.Platform != "" {
			fmt.Fprintf(&b, "*Source: %s*\n\n", o.Platform.Name())
		}
		b.WriteString("## Details\n\n")
		fmt.Fprintf(&b, "- **Price:** %s\n", formatBRL(l.Price))
		fmt.Fprintf(&b, "- **Area:** %d m²\n", l.AreaM2)
		if l.Bedrooms != nil {
			fmt.Fprintf(&b, "- **Bedrooms:** %d\n", *l.Bedrooms)
		} else {
			b.WriteString("- **Bedrooms:** unknown\n")
		}
		if l.Price > 0 && l.AreaM2 > 0 {
			fmt.Fprintf(&b, "- **Price per m²:** %s\n", formatBRL(l.Price/l.AreaM2))
		}
		b.WriteString("\n## Address\n\n")
		fmt.Fprintf(&b, "%s, %s - %s\n", l.Address.Bairro, l.Address.Cidade, l.Address.Estado)
	case o.Kind == core.KindBlocked:
		b.WriteString("# Listing blocked\n\n")
		fmt.Fprintf(&b, "%s\n\n", o.Message())
		fmt.Fprintf(&b, "- **Platform:** %s\n", o.Platform.Name())
		fmt.Fprintf(&b, "- **Status:** %d\n", o.StatusCode)
	default:
		b.WriteString("# Listing could not be parsed\n\n")
		fmt.Fprintf(&b, "%s\n\n", o.Message())
		fmt.Fprintf(&b, "- **Reason:** %s\n", o.Reason)
	}

	return b.String()
}

// formatBRL formats a whole amount as "R$ 1.234.567".
func formatBRL(v int) string {
	s := fmt.Sprintf("%d", v)
	if v < 0 {
		s = s[1:]
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if v < 0 {
		return "R$ -" + string(out)
	}
	return "R$ " + string(out)
}
