// Package pdfwriter renders the generated business-plan narrative into a
// PDF document: a title line followed by multi-page body text.
package pdfwriter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	marginX      = 56
	marginTop    = 60
	marginBottom = 56
	fontSize     = 10
	titleSize    = 16
	lineHeight   = 14
)

// Render produces a PDF file with the given title and body text. The body
// wraps at word boundaries and flows across pages automatically. Text is
// translated to the font's codepage, so currency signs and smart quotes
// from the LLM draft survive.
func Render(title, body string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Helvetica", "B", titleSize)
		pdf.MultiCell(0, titleSize+4, tr(title), "", "L", false)
		pdf.Ln(lineHeight)
	}

	pdf.SetFont("Helvetica", "", fontSize)
	for _, paragraph := range strings.Split(normalize(body), "\n") {
		if paragraph == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(paragraph), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
