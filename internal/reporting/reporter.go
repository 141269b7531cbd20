// Package reporting aggregates batch security-scan results and writes
// them out as JSON, XLSX or HTML.
package reporting

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
	"github.com/mu7ammad-3li/cv-lize/internal/templates"
)

// Entry is the scan outcome for a single file.
type Entry struct {
	Path        string           `json:"path"`
	ContentHash string           `json:"content_hash,omitempty"`
	Valid       bool             `json:"valid"`
	Risk        models.RiskLevel `json:"risk_level"`
	Findings    []models.Finding `json:"findings,omitempty"`
	Quarantined string           `json:"quarantined,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type Summary struct {
	RootPath     string        `json:"root_path"`
	TotalFiles   int64         `json:"total_files"`
	CleanFiles   int64         `json:"clean_files"`
	FlaggedFiles int64         `json:"flagged_files"`
	ErrorFiles   int64         `json:"error_files"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	ScanDuration time.Duration `json:"scan_duration"`
}

type Report struct {
	Summary Summary `json:"summary"`
	Entries []Entry `json:"entries"`
	mu      sync.Mutex
}

func NewReport(rootPath string) *Report {
	return &Report{
		Summary: Summary{
			RootPath:  rootPath,
			StartTime: time.Now(),
		},
		Entries: make([]Entry, 0),
	}
}

// Add records one file outcome. Clean files bump the counters but only
// flagged or failed files keep a full entry.
func (r *Report) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Summary.TotalFiles++
	switch {
	case e.Error != "":
		r.Summary.ErrorFiles++
		r.Entries = append(r.Entries, e)
	case e.Valid:
		r.Summary.CleanFiles++
	default:
		r.Summary.FlaggedFiles++
		r.Entries = append(r.Entries, e)
	}
}

func (r *Report) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summary.EndTime = time.Now()
	r.Summary.ScanDuration = r.Summary.EndTime.Sub(r.Summary.StartTime)
}

// Flagged returns the entries that failed validation.
func (r *Report) Flagged() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Entry
	for _, e := range r.Entries {
		if e.Error == "" && !e.Valid {
			out = append(out, e)
		}
	}
	return out
}

func (r *Report) SaveJSON(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func (r *Report) SaveHTML(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.RenderHTML(file)
}

func (r *Report) RenderHTML(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"duration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
		"riskClass": func(risk models.RiskLevel) string {
			return fmt.Sprintf("risk-%s", risk)
		},
	}).Parse(templates.ReportHTML)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
