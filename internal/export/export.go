// Package export renders the optimized resume into downloadable artifacts:
// Markdown, plain text, PDF and DOCX.
package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Format is a downloadable artifact type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

var formatExt = map[Format]string{
	FormatMarkdown: ".md",
	FormatText:     ".txt",
	FormatPDF:      ".pdf",
	FormatDOCX:     ".docx",
}

var formatMIME = map[Format]string{
	FormatMarkdown: "text/markdown",
	FormatText:     "text/plain",
	FormatPDF:      "application/pdf",
	FormatDOCX:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ParseFormat validates a format string from the download URL.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if _, ok := formatExt[f]; !ok {
		return "", fmt.Errorf("unsupported download format: %s", s)
	}
	return f, nil
}

// MIME returns the content type for HTTP responses.
func (f Format) MIME() string {
	return formatMIME[f]
}

// Filename derives the download name from the original upload name:
// "resume.pdf" becomes "resume_optimized.md" for the markdown format.
func (f Format) Filename(original string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	if base == "" {
		base = "resume"
	}
	return base + "_optimized" + formatExt[f]
}

var (
	htmlTagPattern  = regexp.MustCompile(`</?[a-z]+>`)
	mdHeaderPattern = regexp.MustCompile(`(?m)^#+\s*`)
	mdEmphasis      = regexp.MustCompile(`\*{1,2}([^*]+)\*{1,2}`)
)

// stripInline removes the <strong>/<em> tags that the markdown parser
// injects into bullets and paragraphs.
func stripInline(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// PlainText converts a markdown resume into bare text, for the .txt
// artifact: headers lose their hashes, emphasis markers are stripped and
// bullet markers are normalized.
func PlainText(md string) string {
	text := mdHeaderPattern.ReplaceAllString(md, "")
	text = mdEmphasis.ReplaceAllString(text, "$1")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
			trimmed = "- " + strings.TrimLeft(trimmed, "•* ")
		}
		lines = append(lines, trimmed)
	}

	out := strings.Join(lines, "\n")
	out = regexp.MustCompile(`\n{3,}`).ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out) + "\n"
}
