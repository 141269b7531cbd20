package export

import (
	"bytes"
	"strings"
	"testing"
)

const sampleMarkdown = `# Jane Doe

- Email: jane@example.com
- Phone: +1 555 0100

## Professional Summary

Backend engineer with **eight years** building distributed systems.

## Work Experience

### Senior Engineer | Acme Corp (2020 - Present)

- Led migration of *monolith* to services
- Reduced p99 latency by 40%

## Skills

- Go, Python, Kubernetes
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"PDF", FormatPDF, false},
		{"docx", FormatDOCX, false},
		{"txt", FormatText, false},
		{"exe", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := FormatMarkdown.Filename("resume.pdf"); got != "resume_optimized.md" {
		t.Errorf("Filename = %q", got)
	}
	if got := FormatDOCX.Filename("cv"); got != "cv_optimized.docx" {
		t.Errorf("Filename = %q", got)
	}
	if got := FormatPDF.Filename(""); got != "resume_optimized.pdf" {
		t.Errorf("Filename for empty original = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	text := PlainText(sampleMarkdown)

	if strings.Contains(text, "#") {
		t.Error("plain text still contains markdown headers")
	}
	if strings.Contains(text, "**") {
		t.Error("plain text still contains emphasis markers")
	}
	for _, want := range []string{"Jane Doe", "eight years", "- Led migration of monolith to services"} {
		if !strings.Contains(text, want) {
			t.Errorf("plain text missing %q", want)
		}
	}
	if strings.Contains(text, "\n\n\n") {
		t.Error("plain text contains runs of blank lines")
	}
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleMarkdown)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestRenderDOCX(t *testing.T) {
	out, err := RenderDOCX(sampleMarkdown)
	if err != nil {
		t.Fatalf("RenderDOCX: %v", err)
	}
	// docx files are zip archives
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}

func TestRenderDispatch(t *testing.T) {
	md, err := Render(FormatMarkdown, sampleMarkdown)
	if err != nil {
		t.Fatalf("Render markdown: %v", err)
	}
	if string(md) != sampleMarkdown {
		t.Error("markdown format should pass content through unchanged")
	}

	txt, err := Render(FormatText, sampleMarkdown)
	if err != nil {
		t.Fatalf("Render txt: %v", err)
	}
	if strings.Contains(string(txt), "##") {
		t.Error("txt format should strip headers")
	}
}
