// Package security implements the multi-layer static scanner that inspects
// uploaded PDF bytes for malicious payloads before any other component
// touches the file. The scanner never parses PDF structure: it works on raw
// byte patterns only, so malformed-structure attacks against the validator
// itself have nothing to target.
package security

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// Scanner classifies uploaded byte content as safe or unsafe. It is
// stateless and cheap; one instance can serve concurrent requests.
type Scanner struct {
	catalog Catalog
}

// NewScanner returns a scanner using the built-in pattern catalog.
func NewScanner() *Scanner {
	return NewScannerWithCatalog(DefaultCatalog())
}

// NewScannerWithCatalog builds a scanner around a custom catalog. Used by
// tests to substitute reduced pattern tables.
func NewScannerWithCatalog(c Catalog) *Scanner {
	return &Scanner{catalog: c}
}

// Validate runs the full scan pipeline over content and returns the
// verdict. It is a pure function of its input: no I/O, no retained state,
// and it never fails on malformed input. A file that matches nothing is
// simply valid, a file that cannot be a PDF fails the signature stage.
//
// The content hash is computed over the exact input bytes regardless of
// outcome so quarantined and duplicate files stay identifiable.
func (s *Scanner) Validate(content []byte) models.ScanResult {
	sum := sha256.Sum256(content)
	res := models.ScanResult{
		ContentHash: hex.EncodeToString(sum[:]),
	}

	// Stage 1: signature. Non-PDF content short-circuits; the pattern
	// stages only run over PDF bytes.
	if !bytes.HasPrefix(content, pdfMagic) {
		res.Findings = []models.Finding{{
			Kind:     models.KindInvalidSignature,
			Severity: models.SeverityCritical,
			Message:  "file does not have a valid PDF signature",
		}}
		res.Risk = RiskLevel(res.Findings)
		return res
	}

	// Stages 2-6 all run even when earlier stages matched: the caller gets
	// the complete threat picture in one pass.
	res.Findings = append(res.Findings, scanStage(s.catalog.Script, content)...)
	res.Findings = append(res.Findings, scanStage(s.catalog.EmbeddedFile, content)...)
	res.Findings = append(res.Findings, scanStage(s.catalog.RemoteAccess, content)...)
	res.Findings = append(res.Findings, scanStage(s.catalog.XFA, content)...)
	res.Findings = append(res.Findings, scanStage(s.catalog.ReverseShell, content)...)

	res.IsValid = len(res.Findings) == 0
	res.Risk = RiskLevel(res.Findings)
	return res
}

// scanStage emits one finding per catalog pattern that matches content.
func scanStage(patterns []Pattern, content []byte) []models.Finding {
	var found []models.Finding
	for _, p := range patterns {
		if p.Regexp.Match(content) {
			found = append(found, models.Finding{
				Kind:     p.Kind,
				Severity: p.Severity,
				Message:  p.Message,
			})
		}
	}
	return found
}

// RiskLevel derives the aggregate classification from a finding set.
// First match wins: empty is safe, any critical finding is dispositive,
// more than two highs compound to high, any high alone is medium, and a
// set with only medium/low findings stays low.
func RiskLevel(findings []models.Finding) models.RiskLevel {
	if len(findings) == 0 {
		return models.RiskSafe
	}

	var highs int
	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			return models.RiskCritical
		case models.SeverityHigh:
			highs++
		}
	}

	switch {
	case highs > 2:
		return models.RiskHigh
	case highs > 0:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
