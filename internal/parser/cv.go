// Package parser extracts structured CV entities from plain text using
// regex and lookup tables. There is no NLP model behind this: it trades
// recall for zero runtime dependencies and deterministic output.
package parser

import (
	"regexp"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// International (+49...) or grouped local formats, at least 7 digits.
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	linkedinPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)

	// Section headers like "EXPERIENCE", "Work Experience:", "## Education".
	headerPattern = regexp.MustCompile(`(?i)^(?:#+\s*)?(experience|work experience|professional experience|employment|education|academic background|skills|technical skills|projects|certifications|summary|profile)\s*:?\s*$`)

	// "2019 - 2023", "Jan 2020 – Present", "2021-present".
	durationPattern = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*)?\d{4}\s*[-–—to]+\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*)?(\d{4}|present|current)`)

	degreePattern = regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|doctorate|b\.?sc?\.?|m\.?sc?\.?|b\.?a\.?|m\.?a\.?|m\.?b\.?a\.?|b\.?eng|m\.?eng|diploma)\b`)

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	locationPattern = regexp.MustCompile(`(?im)^[-•*\s]*(?:location|address|based in)\s*:?\s*(.+)$`)
)

// Parser extracts CV entities. Stateless; one instance serves all requests.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse extracts contact details, skills, experience and education from
// raw CV text. It never fails: missing entities just stay empty.
func (p *Parser) Parse(text string) *models.ParsedCV {
	lines := splitLines(text)

	return &models.ParsedCV{
		Contact:    p.extractContact(text, lines),
		Skills:     p.extractSkills(text),
		Experience: p.extractExperience(lines),
		Education:  p.extractEducation(lines),
	}
}

func (p *Parser) extractContact(text string, lines []string) *models.ContactInfo {
	c := &models.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    strings.TrimSpace(phonePattern.FindString(text)),
		LinkedIn: linkedinPattern.FindString(text),
	}
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		c.Location = strings.TrimSpace(m[1])
	}

	// Name heuristic: first non-empty line that is not a header, contains
	// no digits and is at most four words.
	for _, line := range lines {
		line = strings.TrimLeft(line, "# ")
		if line == "" || headerPattern.MatchString(line) {
			continue
		}
		if strings.ContainsAny(line, "0123456789@") {
			break
		}
		if words := strings.Fields(line); len(words) <= 4 {
			c.Name = line
		}
		break
	}
	return c
}

func (p *Parser) extractSkills(text string) []string {
	lower := strings.ToLower(text)

	var skills []string
	for _, skill := range technicalSkills {
		if containsWord(lower, skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// containsWord reports whether needle occurs in haystack bounded by
// non-alphanumeric characters. Needles with punctuation (c++, node.js)
// only need a plain substring hit.
func containsWord(haystack, needle string) bool {
	if strings.ContainsAny(needle, "+#./") {
		return strings.Contains(haystack, needle)
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isAlnum(haystack[start-1])
		afterOK := end == len(haystack) || !isAlnum(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func (p *Parser) extractExperience(lines []string) []models.Experience {
	section := sectionLines(lines, "experience", "employment")

	var out []models.Experience
	for i, line := range section {
		duration := durationPattern.FindString(line)
		if duration == "" {
			continue
		}

		exp := models.Experience{Duration: duration}

		// Title and company usually sit on the same or the previous line:
		// "Software Engineer | Acme Corp" or "Engineer at Acme, 2019-2022".
		header := strings.TrimSpace(durationPattern.ReplaceAllString(line, ""))
		header = strings.Trim(header, "|–—-,* ")
		if header == "" && i > 0 {
			header = strings.Trim(strings.TrimLeft(section[i-1], "# "), "|–—-,* ")
		}
		exp.Title, exp.Company = splitTitleCompany(header)

		// Following bullet lines form the description.
		var desc []string
		for j := i + 1; j < len(section) && len(desc) < 5; j++ {
			next := strings.TrimSpace(section[j])
			if strings.HasPrefix(next, "-") || strings.HasPrefix(next, "•") || strings.HasPrefix(next, "*") {
				desc = append(desc, strings.TrimLeft(next, "-•* "))
			} else if durationPattern.MatchString(next) {
				break
			}
		}
		exp.Description = strings.Join(desc, " ")
		out = append(out, exp)
	}
	return out
}

func splitTitleCompany(header string) (title, company string) {
	for _, sep := range []string{"|", " at ", " @ ", "–", "—", ", "} {
		if idx := strings.Index(header, sep); idx > 0 {
			return strings.TrimSpace(header[:idx]), strings.TrimSpace(header[idx+len(sep):])
		}
	}
	return strings.TrimSpace(header), ""
}

func (p *Parser) extractEducation(lines []string) []models.Education {
	section := sectionLines(lines, "education", "academic")

	var out []models.Education
	for i, line := range section {
		if !degreePattern.MatchString(line) {
			continue
		}

		edu := models.Education{
			Year: lastMatch(yearPattern, line),
		}

		clean := strings.Trim(strings.TrimLeft(line, "# "), "|–—-,* ")
		edu.Degree, edu.Institution = splitTitleCompany(clean)

		// Year sometimes only appears on the next line.
		if edu.Year == "" && i+1 < len(section) {
			edu.Year = lastMatch(yearPattern, section[i+1])
		}
		out = append(out, edu)
	}
	return out
}

func lastMatch(re *regexp.Regexp, s string) string {
	all := re.FindAllString(s, -1)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1]
}

// sectionLines returns the lines between a header matching one of the
// given keywords and the next section header.
func sectionLines(lines []string, keywords ...string) []string {
	start := -1
	for i, line := range lines {
		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		header := strings.ToLower(m[1])
		matched := false
		for _, kw := range keywords {
			if strings.Contains(header, kw) {
				matched = true
				break
			}
		}
		if start >= 0 {
			return lines[start:i]
		}
		if matched {
			start = i + 1
		}
	}
	if start >= 0 {
		return lines[start:]
	}
	return nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		out = append(out, strings.TrimSpace(l))
	}
	return out
}
