// Package markdown parses LLM-generated markdown resumes into the
// structured section model used by the renderers and the API.
package markdown

import (
	"regexp"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

var (
	sectionPattern    = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	subsectionPattern = regexp.MustCompile(`(?m)^###\s+(.+?)\s*$`)
	bulletPattern     = regexp.MustCompile(`(?m)^\s*[-•*]\s+(.+)$`)
	bulletLinePattern = regexp.MustCompile(`^\s*[-•*]\s+`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.+?)\*`)

	// "Title | Date" or "Title - Date" at the end of a subsection header.
	titleDatePattern = regexp.MustCompile(`^(.+?)\s*[\|–—-]\s*(.+?)$`)

	contactSection = regexp.MustCompile(`(?i)^contact\s+information`)
)

// InlineHTML converts **bold** and *italic* markdown spans to HTML tags.
func InlineHTML(text string) string {
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>$1</em>")
	return text
}

// SplitTitleDate splits "Senior Engineer | 2020 - 2023" into title and
// date. Returns the original title and "" when no date part is present.
func SplitTitleDate(title string) (string, string) {
	if m := titleDatePattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return title, ""
}

// ParseSections breaks a markdown resume into its ## sections and ###
// subsections. The contact information section is skipped: renderers show
// it separately in the document header.
func ParseSections(md string) *models.CVSections {
	out := &models.CVSections{}

	matches := sectionPattern.FindAllStringSubmatchIndex(md, -1)
	for i, m := range matches {
		title := strings.TrimSpace(md[m[2]:m[3]])
		if contactSection.MatchString(title) {
			continue
		}

		end := len(md)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(md[m[1]:end])

		section := models.CVSection{
			Title:   title,
			Content: content,
		}

		subMatches := subsectionPattern.FindAllStringSubmatchIndex(content, -1)
		if len(subMatches) == 0 {
			section.Bullets = extractBullets(content)
			section.Paragraphs = extractParagraphs(content)
		} else {
			for j, sm := range subMatches {
				subTitle, subDate := SplitTitleDate(strings.TrimSpace(content[sm[2]:sm[3]]))

				subEnd := len(content)
				if j+1 < len(subMatches) {
					subEnd = subMatches[j+1][0]
				}
				subContent := strings.TrimSpace(content[sm[1]:subEnd])

				section.Subsections = append(section.Subsections, models.CVSubsection{
					Title:      subTitle,
					Date:       subDate,
					Content:    subContent,
					Bullets:    extractBullets(subContent),
					Paragraphs: extractParagraphs(subContent),
				})
			}
		}

		out.Sections = append(out.Sections, section)
	}

	out.TotalSections = len(out.Sections)
	return out
}

func extractBullets(content string) []string {
	var bullets []string
	for _, m := range bulletPattern.FindAllStringSubmatch(content, -1) {
		bullets = append(bullets, InlineHTML(m[1]))
	}
	return bullets
}

// extractParagraphs joins consecutive non-bullet lines into paragraphs.
func extractParagraphs(content string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, InlineHTML(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !bulletLinePattern.MatchString(line) {
			current = append(current, line)
		} else {
			flush()
		}
	}
	flush()
	return paragraphs
}

// PersonalInfo pulls name and contact lines out of the document header
// (everything above the first ## section).
func PersonalInfo(md string) models.ContactInfo {
	header := md
	if loc := sectionPattern.FindStringIndex(md); loc != nil {
		header = md[:loc[0]]
	}

	info := models.ContactInfo{}
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "# "):
			info.Name = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.Contains(line, "@") && info.Email == "":
			info.Email = extractField(line)
		case strings.Contains(strings.ToLower(line), "linkedin.com") && info.LinkedIn == "":
			info.LinkedIn = extractField(line)
		case strings.Contains(strings.ToLower(line), "phone") && info.Phone == "":
			info.Phone = extractField(line)
		}
	}
	return info
}

// extractField takes the value part of lines like "- Email: a@b.c".
func extractField(line string) string {
	line = strings.TrimLeft(line, "-•* ")
	if idx := strings.Index(line, ":"); idx >= 0 && !strings.Contains(line[:idx], "/") {
		line = line[idx+1:]
	}
	return strings.TrimSpace(line)
}
