// Package keywords implements ATS keyword extraction, density analysis and
// resume/job-description gap detection over static category tables.
package keywords

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// Analyzer is stateless apart from the read-only category tables.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Extract returns the catalogued keywords present in text, by category.
func (a *Analyzer) Extract(text string) map[string][]string {
	lower := strings.ToLower(text)

	found := make(map[string][]string, len(categories))
	for category, list := range categories {
		for _, kw := range list {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found[category] = append(found[category], kw)
			}
		}
	}
	return found
}

// Density returns how often keyword occurs in text and its share of the
// total word count as a percentage. 1-3% is considered optimal for ATS.
func (a *Analyzer) Density(text, keyword string) (int, float64) {
	lower := strings.ToLower(text)
	frequency := strings.Count(lower, strings.ToLower(keyword))

	words := len(strings.Fields(text))
	if words == 0 {
		return frequency, 0
	}
	return frequency, float64(frequency) / float64(words) * 100
}

var sentenceSplit = regexp.MustCompile(`[.!?\n]+`)

// Context returns up to max sentences of text containing the keyword.
func (a *Analyzer) Context(text, keyword string, max int) []string {
	kw := strings.ToLower(keyword)

	var contexts []string
	for _, sent := range sentenceSplit.Split(text, -1) {
		if len(contexts) >= max {
			break
		}
		sent = strings.TrimSpace(sent)
		if sent != "" && strings.Contains(strings.ToLower(sent), kw) {
			contexts = append(contexts, sent)
		}
	}
	return contexts
}

// Analyze runs the full keyword analysis of a resume against a job
// description, sorted by density descending.
func (a *Analyzer) Analyze(resume, jd string) []models.KeywordAnalysis {
	resumeKw := a.Extract(resume)
	jdKw := a.Extract(jd)

	var out []models.KeywordAnalysis
	for category, kws := range resumeKw {
		for _, kw := range kws {
			freq, density := a.Density(resume, kw)

			inJD := false
			for _, j := range jdKw[category] {
				if strings.EqualFold(j, kw) {
					inJD = true
					break
				}
			}

			out = append(out, models.KeywordAnalysis{
				Keyword:      kw,
				Frequency:    freq,
				Density:      math.Round(density*100) / 100,
				Category:     category,
				InJD:         inJD,
				ContextUsage: a.Context(resume, kw, 2),
			})
		}
	}

	// Map iteration gives a random input order, so ties break on the
	// keyword to keep responses stable.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Density != out[j].Density {
			return out[i].Density > out[j].Density
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

var importanceRank = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

// Missing lists job-description keywords absent from the resume, ranked by
// how prominent they are in the job description.
func (a *Analyzer) Missing(resume, jd string) []models.MissingKeyword {
	resumeKw := a.Extract(resume)
	jdKw := a.Extract(jd)

	var out []models.MissingKeyword
	for category, kws := range jdKw {
		present := map[string]bool{}
		for _, kw := range resumeKw[category] {
			present[strings.ToLower(kw)] = true
		}

		for _, kw := range kws {
			if present[strings.ToLower(kw)] {
				continue
			}

			_, density := a.Density(jd, kw)
			importance := "low"
			switch {
			case density > 1.0:
				importance = "critical"
			case density > 0.5:
				importance = "high"
			case density > 0.2:
				importance = "medium"
			}

			tmpl, ok := suggestions[category]
			if !ok {
				tmpl = defaultSuggestion
			}

			out = append(out, models.MissingKeyword{
				Keyword:    kw,
				Category:   category,
				Importance: importance,
				Suggestion: fmt.Sprintf(tmpl, kw),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := importanceRank[out[i].Importance], importanceRank[out[j].Importance]
		if ri != rj {
			return ri < rj
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Similarity computes bag-of-words cosine similarity between two texts,
// clamped to [0, 1]. Token vectors only; no embeddings.
func (a *Analyzer) Similarity(resume, jd string) float64 {
	va := termVector(resume)
	vb := termVector(jd)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, na, nb float64
	for term, ca := range va {
		na += ca * ca
		if cb, ok := vb[term]; ok {
			dot += ca * cb
		}
	}
	for _, cb := range vb {
		nb += cb * cb
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}

func termVector(text string) map[string]float64 {
	vec := map[string]float64{}
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) > 1 {
			vec[tok]++
		}
	}
	return vec
}
