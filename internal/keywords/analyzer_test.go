package keywords

import (
	"strings"
	"testing"
)

const resumeText = `Senior backend engineer. Built services in Go and Python,
deployed with Docker and Kubernetes on AWS. Stored data in PostgreSQL
and Redis. Practiced Agile with Git.`

const jdText = `We need a backend engineer with Python, Kubernetes,
Kubernetes operations experience, Terraform and MongoDB. Agile team.`

func TestExtract(t *testing.T) {
	a := NewAnalyzer()
	found := a.Extract(resumeText)

	if !contains(found["languages"], "Python") {
		t.Errorf("languages = %v", found["languages"])
	}
	if !contains(found["infrastructure"], "Kubernetes") {
		t.Errorf("infrastructure = %v", found["infrastructure"])
	}
	if !contains(found["databases"], "PostgreSQL") {
		t.Errorf("databases = %v", found["databases"])
	}
	if contains(found["databases"], "MongoDB") {
		t.Error("MongoDB should not be found in resume")
	}
}

func TestDensity(t *testing.T) {
	a := NewAnalyzer()

	freq, density := a.Density("Go Go Go stop", "go")
	if freq != 3 {
		t.Errorf("frequency = %d", freq)
	}
	if density != 75 {
		t.Errorf("density = %f", density)
	}

	if f, d := a.Density("", "go"); f != 0 || d != 0 {
		t.Errorf("empty text: %d %f", f, d)
	}
}

func TestAnalyzeMarksJDKeywords(t *testing.T) {
	a := NewAnalyzer()
	analyses := a.Analyze(resumeText, jdText)

	if len(analyses) == 0 {
		t.Fatal("no keywords analyzed")
	}

	byKeyword := map[string]bool{}
	for _, an := range analyses {
		byKeyword[an.Keyword] = an.InJD
	}

	if !byKeyword["Python"] {
		t.Error("Python should be marked as present in JD")
	}
	if inJD, ok := byKeyword["Redis"]; ok && inJD {
		t.Error("Redis is not in the JD")
	}

	// Sorted by density, descending.
	for i := 1; i < len(analyses); i++ {
		if analyses[i].Density > analyses[i-1].Density {
			t.Errorf("not sorted by density at %d", i)
		}
	}
}

func TestAnalyzeOrderStable(t *testing.T) {
	a := NewAnalyzer()

	// The resume has several keywords tied at the same density; the output
	// order must not vary with map iteration.
	first := a.Analyze(resumeText, jdText)
	for run := 0; run < 10; run++ {
		again := a.Analyze(resumeText, jdText)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d keywords, want %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i].Keyword != first[i].Keyword {
				t.Fatalf("run %d: order differs at %d: %q vs %q",
					run, i, again[i].Keyword, first[i].Keyword)
			}
		}
	}
}

func TestMissingOrderStable(t *testing.T) {
	a := NewAnalyzer()

	first := a.Missing(resumeText, jdText)
	for run := 0; run < 10; run++ {
		again := a.Missing(resumeText, jdText)
		for i := range first {
			if again[i].Keyword != first[i].Keyword {
				t.Fatalf("run %d: order differs at %d: %q vs %q",
					run, i, again[i].Keyword, first[i].Keyword)
			}
		}
	}
}

func TestMissing(t *testing.T) {
	a := NewAnalyzer()
	missing := a.Missing(resumeText, jdText)

	keywords := map[string]string{}
	for _, m := range missing {
		keywords[m.Keyword] = m.Importance
	}

	if _, ok := keywords["Terraform"]; !ok {
		t.Errorf("Terraform missing from %v", keywords)
	}
	if _, ok := keywords["MongoDB"]; !ok {
		t.Errorf("MongoDB missing from %v", keywords)
	}
	if _, ok := keywords["Python"]; ok {
		t.Error("Python is present in the resume, not missing")
	}

	for _, m := range missing {
		if m.Suggestion == "" || !strings.Contains(m.Suggestion, m.Keyword) {
			t.Errorf("bad suggestion for %s: %q", m.Keyword, m.Suggestion)
		}
	}

	// Sorted by importance rank.
	for i := 1; i < len(missing); i++ {
		if importanceRank[missing[i].Importance] < importanceRank[missing[i-1].Importance] {
			t.Errorf("not sorted by importance at %d", i)
		}
	}
}

func TestSimilarity(t *testing.T) {
	a := NewAnalyzer()

	if sim := a.Similarity("go python docker", "go python docker"); sim < 0.99 {
		t.Errorf("identical texts: %f", sim)
	}
	if sim := a.Similarity("alpha beta gamma", "delta epsilon zeta"); sim != 0 {
		t.Errorf("disjoint texts: %f", sim)
	}
	if sim := a.Similarity("", "go"); sim != 0 {
		t.Errorf("empty text: %f", sim)
	}

	partial := a.Similarity(resumeText, jdText)
	if partial <= 0 || partial >= 1 {
		t.Errorf("partial overlap out of range: %f", partial)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
