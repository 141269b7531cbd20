package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mu7ammad-3li/cv-lize/internal/markdown"
)

// RenderPDF lays the markdown resume out as an A4 PDF. The document
// header carries the name and contact lines, each ## section becomes a
// ruled heading and subsections keep their right-aligned dates.
func RenderPDF(md string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 16, 18)
	doc.SetAutoPageBreak(true, 16)
	doc.AddPage()

	info := markdown.PersonalInfo(md)
	if info.Name != "" {
		doc.SetFont("Helvetica", "B", 18)
		doc.CellFormat(0, 9, info.Name, "", 1, "C", false, 0, "")
	}
	if contact := contactLine(info.Email, info.Phone, info.LinkedIn); contact != "" {
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(90, 90, 90)
		doc.CellFormat(0, 5, contact, "", 1, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(3)

	for _, section := range markdown.ParseSections(md).Sections {
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 7, strings.ToUpper(section.Title), "B", 1, "L", false, 0, "")
		doc.Ln(1.5)

		if len(section.Subsections) == 0 {
			writeBody(doc, section.Bullets, section.Paragraphs)
		}
		for _, sub := range section.Subsections {
			doc.SetFont("Helvetica", "B", 11)
			doc.CellFormat(110, 6, sub.Title, "", 0, "L", false, 0, "")
			doc.SetFont("Helvetica", "I", 9)
			doc.CellFormat(0, 6, sub.Date, "", 1, "R", false, 0, "")
			writeBody(doc, sub.Bullets, sub.Paragraphs)
		}
		doc.Ln(2)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBody(doc *fpdf.Fpdf, bullets, paragraphs []string) {
	doc.SetFont("Helvetica", "", 10)
	for _, p := range paragraphs {
		doc.MultiCell(0, 5, stripInline(p), "", "L", false)
		doc.Ln(1)
	}
	for _, b := range bullets {
		doc.CellFormat(5, 5, "-", "", 0, "L", false, 0, "")
		doc.MultiCell(0, 5, stripInline(b), "", "L", false)
	}
}

func contactLine(parts ...string) string {
	var present []string
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, "  |  ")
}
