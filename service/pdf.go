package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
	"github.com/go-pdf/fpdf"
)

// Layout constants for A4 portrait in millimetres. A vertical cursor walks
// down from the top margin by a fixed line height; a new page starts when
// the cursor would cross the bottom margin.
const (
	pdfMarginLeft = 20.0
	pdfMarginTop  = 20.0
	pdfBottomY    = 275.0
	pdfLineHeight = 6.0
	pdfSectionGap = 10.0

	// Body text is wrapped into fixed-width character chunks. This is not
	// word-aware and can split a word across lines; kept for parity with
	// the layout the generated documents have always had.
	pdfWrapWidth = 90
)

// PDFRenderer lays out a formal document onto fixed-size pages.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for a formal document.
func (r *PDFRenderer) Render(doc *model.FormalDocument) ([]byte, error) {
	pdf := r.layout(doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) layout(doc *model.FormalDocument) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	y := pdfMarginTop

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMarginLeft, y, doc.Title)
	y += pdfLineHeight * 2

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pdfMarginLeft, y, fmt.Sprintf("Between %s (client) and %s (freelancer)", doc.Client, doc.Freelancer))
	y += pdfSectionGap

	for _, sec := range doc.Sections {
		if y > pdfBottomY {
			pdf.AddPage()
			y = pdfMarginTop
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(pdfMarginLeft, y, sec.Title)
		y += pdfLineHeight

		pdf.SetFont("Helvetica", "", 10)
		for _, line := range wrapFixed(sec.FormattedContent, pdfWrapWidth) {
			if y > pdfBottomY {
				pdf.AddPage()
				y = pdfMarginTop
			}
			pdf.Text(pdfMarginLeft, y, line)
			y += pdfLineHeight
		}
		y += pdfSectionGap - pdfLineHeight
	}

	return pdf
}

// wrapFixed splits text into chunks of at most width characters, honouring
// explicit newlines.
func wrapFixed(s string, width int) []string {
	var lines []string
	for _, seg := range strings.Split(s, "\n") {
		runes := []rune(seg)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}
