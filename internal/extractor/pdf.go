package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF content.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(content []byte) (string, error) {
	// ledongthuc/pdf needs a ReaderAt plus size; uploads are already fully
	// buffered in memory by the time we get here.
	reader := bytes.NewReader(content)

	doc, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var parts []string
	totalPages := doc.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages
		}
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no extractable text in pdf")
	}
	return strings.Join(parts, "\n\n"), nil
}
