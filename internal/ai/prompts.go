package ai

import (
	"fmt"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

const analysisSystemPrompt = `You are an expert CV/resume analyzer and career coach with deep knowledge of ATS systems and hiring practices. Always respond with valid JSON only.`

const analysisPromptTemplate = `**Candidate's CV (Full Text):**
%s

**Parsed Information:**
- Skills: %s
- Work Experience: %d position(s)
- Education: %d qualification(s)
- Contact: %s

**Target Job Description:**
%s

**Your Task:**
Analyze the CV against the job description and provide:

1. **Overall CV Score (0-100)**: Rate the CV quality considering formatting, content, and completeness
2. **Key Strengths (3-5 points)**: What makes this CV stand out
3. **Weaknesses or Gaps (3-5 points)**: Areas that need improvement
4. **Specific Suggestions (5-7 actionable items)**: Concrete improvements the candidate can make
5. **ATS Compatibility Score (0-100)**: How well will this CV pass through Applicant Tracking Systems
6. **Match Percentage (0-100)**: How well does the CV match the job requirements

**Then generate an optimized CV in markdown format** that:
- Highlights skills and experience relevant to the job description
- Reframes achievements to match job requirements
- Uses ATS-friendly formatting (clear headers, bullet points, no tables/graphics)
- Includes all original information but reorganized for maximum impact

**IMPORTANT**: Return ONLY valid JSON in this exact format (no additional text):

{"score": 85, "strengths": ["..."], "weaknesses": ["..."], "suggestions": ["..."], "atsCompatibility": 90, "matchPercentage": 75, "optimizedCV": "# Full Name\n\n## Skills\n..."}`

// Input truncation limits, to keep the prompt inside the context window.
const (
	maxCVChars = 10000
	maxJDChars = 5000
)

func analysisPrompt(parsed *models.ParsedCV, cvText, jobDescription string) string {
	skills := "None detected"
	expCount, eduCount := 0, 0
	contact := "Not detected"

	if parsed != nil {
		if len(parsed.Skills) > 0 {
			skills = strings.Join(parsed.Skills, ", ")
		}
		expCount = len(parsed.Experience)
		eduCount = len(parsed.Education)
		if parsed.Contact != nil && parsed.Contact.Name != "" {
			contact = parsed.Contact.Name
		}
	}

	return fmt.Sprintf(analysisPromptTemplate,
		truncate(cvText, maxCVChars),
		skills,
		expCount,
		eduCount,
		contact,
		truncate(jobDescription, maxJDChars),
	)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
