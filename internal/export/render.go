package export

import "fmt"

// Render produces the artifact bytes for a format from the optimized
// markdown resume.
func Render(f Format, md string) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(md), nil
	case FormatText:
		return []byte(PlainText(md)), nil
	case FormatPDF:
		return RenderPDF(md)
	case FormatDOCX:
		return RenderDOCX(md)
	}
	return nil, fmt.Errorf("unsupported download format: %s", f)
}
