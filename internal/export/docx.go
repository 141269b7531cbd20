package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/mu7ammad-3li/cv-lize/internal/markdown"
)

// RenderDOCX builds a Word document from the markdown resume. Word sizes
// are half-points, so "28" is a 14pt heading.
func RenderDOCX(md string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	info := markdown.PersonalInfo(md)
	if info.Name != "" {
		doc.AddParagraph().AddText(info.Name).Size("36").Bold()
	}
	if contact := contactLine(info.Email, info.Phone, info.LinkedIn); contact != "" {
		doc.AddParagraph().AddText(contact).Size("18")
	}

	for _, section := range markdown.ParseSections(md).Sections {
		doc.AddParagraph().AddText(section.Title).Size("28").Bold()

		if len(section.Subsections) == 0 {
			addBody(doc, section.Bullets, section.Paragraphs)
		}
		for _, sub := range section.Subsections {
			heading := sub.Title
			if sub.Date != "" {
				heading += "  (" + sub.Date + ")"
			}
			doc.AddParagraph().AddText(heading).Size("24").Bold()
			addBody(doc, sub.Bullets, sub.Paragraphs)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("rendering docx: %w", err)
	}
	return buf.Bytes(), nil
}

func addBody(doc *docx.Docx, bullets, paragraphs []string) {
	for _, p := range paragraphs {
		doc.AddParagraph().AddText(stripInline(p)).Size("20")
	}
	for _, b := range bullets {
		doc.AddParagraph().AddText("- " + stripInline(b)).Size("20")
	}
}
