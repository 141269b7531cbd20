package markdown

import (
	"strings"
	"testing"
)

const sampleResume = `# Jane Doe

- Email: jane@example.com
- Phone: +1 555 123 4567
- LinkedIn: linkedin.com/in/janedoe

## Contact Information
- Email: jane@example.com

## Professional Summary
Experienced backend engineer with **6 years** in distributed systems.

## Work Experience

### Senior Software Engineer | Jan 2020 - Present
Acme Corp

- Built a *Kubernetes* deployment platform
- Reduced latency by 40%

### Software Engineer | 2016 - 2019
- Developed Django services

## Skills
- Go, Python, Docker
`

func TestParseSections(t *testing.T) {
	sections := ParseSections(sampleResume)

	// Contact Information is skipped.
	if sections.TotalSections != 3 {
		t.Fatalf("expected 3 sections, got %d", sections.TotalSections)
	}

	titles := []string{}
	for _, s := range sections.Sections {
		titles = append(titles, s.Title)
	}
	want := []string{"Professional Summary", "Work Experience", "Skills"}
	for i, w := range want {
		if titles[i] != w {
			t.Errorf("section %d = %q, want %q", i, titles[i], w)
		}
	}
}

func TestParseSubsections(t *testing.T) {
	sections := ParseSections(sampleResume)

	var work *struct {
		subs int
	}
	for _, s := range sections.Sections {
		if s.Title == "Work Experience" {
			if len(s.Subsections) != 2 {
				t.Fatalf("expected 2 subsections, got %d", len(s.Subsections))
			}
			first := s.Subsections[0]
			if first.Title != "Senior Software Engineer" {
				t.Errorf("title = %q", first.Title)
			}
			if first.Date != "Jan 2020 - Present" {
				t.Errorf("date = %q", first.Date)
			}
			if len(first.Bullets) != 2 {
				t.Errorf("bullets = %v", first.Bullets)
			}
			if len(first.Paragraphs) == 0 || first.Paragraphs[0] != "Acme Corp" {
				t.Errorf("paragraphs = %v", first.Paragraphs)
			}
			work = &struct{ subs int }{len(s.Subsections)}
		}
	}
	if work == nil {
		t.Fatal("work experience section missing")
	}
}

func TestInlineHTML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"**b** and *i*", "<strong>b</strong> and <em>i</em>"},
	}
	for _, tt := range tests {
		if got := InlineHTML(tt.in); got != tt.want {
			t.Errorf("InlineHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTitleDate(t *testing.T) {
	title, date := SplitTitleDate("Engineer | 2020 - 2023")
	if title != "Engineer" || date != "2020 - 2023" {
		t.Errorf("got %q / %q", title, date)
	}

	title, date = SplitTitleDate("Just a Title")
	if title != "Just a Title" || date != "" {
		t.Errorf("got %q / %q", title, date)
	}
}

func TestPersonalInfo(t *testing.T) {
	info := PersonalInfo(sampleResume)
	if info.Name != "Jane Doe" {
		t.Errorf("name = %q", info.Name)
	}
	if info.Email != "jane@example.com" {
		t.Errorf("email = %q", info.Email)
	}
	if info.LinkedIn != "linkedin.com/in/janedoe" {
		t.Errorf("linkedin = %q", info.LinkedIn)
	}
}

func TestFilterSections(t *testing.T) {
	filtered := FilterSections(sampleResume, []string{"Skills"})

	if !strings.Contains(filtered, "## Skills") {
		t.Error("selected section dropped")
	}
	if strings.Contains(filtered, "## Work Experience") {
		t.Error("unselected section kept")
	}
	// Document header survives filtering.
	if !strings.Contains(filtered, "# Jane Doe") {
		t.Error("header dropped")
	}
}

func TestFilterSectionsFlexibleMatch(t *testing.T) {
	md := "# X\n\n## Technical Skills\n- Go\n\n## Education\n- Degree\n"
	filtered := FilterSections(md, []string{"skills"})
	if !strings.Contains(filtered, "Technical Skills") {
		t.Error("substring match failed")
	}
	if strings.Contains(filtered, "Education") {
		t.Error("unselected section kept")
	}
}

func TestFilterSectionsEmptySelection(t *testing.T) {
	if got := FilterSections(sampleResume, nil); got != sampleResume {
		t.Error("empty selection must return input unchanged")
	}
}

func TestSectionNames(t *testing.T) {
	names := SectionNames(sampleResume)
	if len(names) != 4 {
		t.Fatalf("expected 4 names, got %v", names)
	}
	if names[0] != "Contact Information" {
		t.Errorf("first = %q", names[0])
	}
}
