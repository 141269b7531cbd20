package markdown

import (
	"regexp"
	"strings"
)

var (
	headerLine   = regexp.MustCompile(`^##\s+(.+)$`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	anySectionRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)
)

// FilterSections keeps only the named sections of a markdown resume. The
// document header above the first section always survives. Matching is
// flexible in both directions, so "Skills" selects "Technical Skills".
// An empty selection returns the input unchanged.
func FilterSections(md string, included []string) string {
	if len(included) == 0 {
		return md
	}

	var kept []string
	includeCurrent := true
	inHeader := true

	for _, line := range strings.Split(md, "\n") {
		if m := headerLine.FindStringSubmatch(line); m != nil {
			inHeader = false
			includeCurrent = sectionSelected(m[1], included)
			if includeCurrent {
				kept = append(kept, line)
			}
			continue
		}
		if inHeader || includeCurrent {
			kept = append(kept, line)
		}
	}

	result := blankRuns.ReplaceAllString(strings.Join(kept, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func sectionSelected(name string, included []string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, inc := range included {
		incLower := strings.ToLower(strings.TrimSpace(inc))
		if strings.Contains(lower, incLower) || strings.Contains(incLower, lower) {
			return true
		}
	}
	return false
}

// SectionNames lists all ## section titles in document order.
func SectionNames(md string) []string {
	var names []string
	for _, m := range anySectionRe.FindAllStringSubmatch(md, -1) {
		names = append(names, strings.TrimSpace(m[1]))
	}
	return names
}
