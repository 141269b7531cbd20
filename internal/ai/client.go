// Package ai calls the OpenRouter chat-completions API to score a CV
// against a job description and generate an ATS-optimized rewrite.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mu7ammad-3li/cv-lize/internal/config"
	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("openrouter api key not configured")

type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.OpenRouterURL,
		APIKey:  cfg.OpenRouterKey,
		Model:   cfg.OpenRouterModel,
		HTTP: &http.Client{
			Timeout: 120 * time.Second, // CV rewrites are long generations
		},
	}
}

// Configured reports whether the client can make live API calls.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

// Ping checks reachability with a minimal request.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	_, err := c.complete(ctx, "ping", "Reply with the single word: pong", 16)
	return err
}

// AnalysisResult is the raw LLM verdict before local keyword enrichment.
type AnalysisResult struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	ATSCompatibility int      `json:"atsCompatibility"`
	MatchPercentage  int      `json:"matchPercentage"`
	OptimizedCV      string   `json:"optimizedCV"`
}

// AnalyzeCV scores the CV against the job description and returns the
// optimized rewrite. On API or parse failure a deterministic fallback
// built from the parsed data is returned along with the error, so callers
// can degrade gracefully.
func (c *Client) AnalyzeCV(ctx context.Context, parsed *models.ParsedCV, cvText, jobDescription string) (*AnalysisResult, error) {
	if !c.Configured() {
		return fallbackResult(parsed), ErrNotConfigured
	}

	prompt := analysisPrompt(parsed, cvText, jobDescription)

	raw, err := c.complete(ctx, analysisSystemPrompt, prompt, 16000)
	if err != nil {
		return fallbackResult(parsed), err
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return fallbackResult(parsed), fmt.Errorf("parse analysis response: %w", err)
	}
	return result, nil
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", err
	}
	if chat.Error != nil {
		return "", fmt.Errorf("openrouter error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("openrouter returned no choices")
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// parseAnalysis extracts the JSON object from a model response that may be
// wrapped in markdown code fences or surrounded by prose.
func parseAnalysis(raw string) (*AnalysisResult, error) {
	clean := cleanMarkdown(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON object in response")
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(clean[start:end+1]), &result); err != nil {
		return nil, err
	}
	if result.OptimizedCV == "" {
		return nil, errors.New("response missing optimized CV")
	}
	return &result, nil
}

func cleanMarkdown(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// fallbackResult builds a degraded but usable analysis from the locally
// parsed data when the API is unavailable.
func fallbackResult(parsed *models.ParsedCV) *AnalysisResult {
	name := "Your Name"
	skills := []string{}
	if parsed != nil {
		if parsed.Contact != nil && parsed.Contact.Name != "" {
			name = parsed.Contact.Name
		}
		skills = parsed.Skills
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n## Skills\n", name)
	limit := len(skills)
	if limit > 10 {
		limit = 10
	}
	for _, s := range skills[:limit] {
		fmt.Fprintf(&md, "- %s\n", s)
	}
	md.WriteString("\n*Optimized version will be generated when the analysis service is reachable.*\n")

	return &AnalysisResult{
		Score: 70,
		Strengths: []string{
			"CV structure is present",
			fmt.Sprintf("Contains %d identified skills", len(skills)),
		},
		Weaknesses: []string{
			"Unable to perform detailed analysis at this time",
		},
		Suggestions: []string{
			"Ensure all sections are clearly labeled (Experience, Education, Skills)",
			"Use bullet points for achievements",
			"Include quantifiable metrics where possible",
			"Add relevant keywords from the job description",
		},
		ATSCompatibility: 75,
		MatchPercentage:  60,
		OptimizedCV:      md.String(),
	}
}
