package models

import "time"

// FileType is the declared upload format.
type FileType string

const (
	FilePDF      FileType = "pdf"
	FileMarkdown FileType = "markdown"
	FileText     FileType = "txt"
)

// ContactInfo holds the candidate contact details extracted from a CV.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Location string `json:"location,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ParsedCV is the structured view of an uploaded CV produced by the
// regex-based entity parser.
type ParsedCV struct {
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Contact    *ContactInfo `json:"contact,omitempty"`
}

// KeywordAnalysis describes one technical keyword found in the resume.
type KeywordAnalysis struct {
	Keyword      string   `json:"keyword"`
	Frequency    int      `json:"frequency"`
	Density      float64  `json:"density"`
	Category     string   `json:"category"`
	InJD         bool     `json:"in_jd"`
	ContextUsage []string `json:"context_usage,omitempty"`
}

// MissingKeyword is a job-description keyword absent from the resume.
type MissingKeyword struct {
	Keyword    string `json:"keyword"`
	Category   string `json:"category"`
	Importance string `json:"importance"` // critical | high | medium | low
	Suggestion string `json:"suggestion"`
}

// CVAnalysis is the scoring result returned by the LLM, enriched with the
// local keyword analysis.
type CVAnalysis struct {
	Score            int               `json:"score"`
	Strengths        []string          `json:"strengths"`
	Weaknesses       []string          `json:"weaknesses"`
	Suggestions      []string          `json:"suggestions"`
	ATSCompatibility int               `json:"ats_compatibility"`
	MatchPercentage  int               `json:"match_percentage"`
	MissingKeywords  []MissingKeyword  `json:"missing_keywords,omitempty"`
	KeywordAnalysis  []KeywordAnalysis `json:"keyword_analysis,omitempty"`
	Similarity       float64           `json:"similarity_score"`
}

// CVSubsection is a ### block inside a resume section.
type CVSubsection struct {
	Title      string   `json:"title"`
	Date       string   `json:"date,omitempty"`
	Content    string   `json:"content"`
	Paragraphs []string `json:"paragraphs"`
	Bullets    []string `json:"bullets"`
}

// CVSection is a ## block of a markdown resume.
type CVSection struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Subsections []CVSubsection `json:"subsections,omitempty"`
	Paragraphs  []string       `json:"paragraphs"`
	Bullets     []string       `json:"bullets"`
}

type CVSections struct {
	Sections      []CVSection `json:"sections"`
	TotalSections int         `json:"total_sections"`
}

// OptimizedCV is the rewritten, ATS-friendly resume.
type OptimizedCV struct {
	Markdown string      `json:"markdown"`
	Sections *CVSections `json:"sections,omitempty"`
}

// Session is one upload/analyze lifecycle, persisted for 24 hours.
type Session struct {
	SessionID        string       `json:"session_id"`
	OriginalFilename string       `json:"original_filename"`
	FileHash         string       `json:"file_hash"`
	FileType         FileType     `json:"file_type"`
	ExtractedText    string       `json:"extracted_text,omitempty"`
	JobDescription   string       `json:"job_description,omitempty"`
	ParsedData       *ParsedCV    `json:"parsed_data,omitempty"`
	Analysis         *CVAnalysis  `json:"analysis,omitempty"`
	OptimizedCV      *OptimizedCV `json:"optimized_cv,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	ExpiresAt        time.Time    `json:"expires_at"`
}
