package models

// FindingKind identifies the class of threat a scan stage detected.
type FindingKind string

const (
	KindInvalidSignature FindingKind = "invalid-signature"
	KindScriptContent    FindingKind = "script-content"
	KindAutoAction       FindingKind = "auto-action"
	KindRichMedia        FindingKind = "rich-media"
	KindEmbeddedFile     FindingKind = "embedded-file"
	KindFileLaunch       FindingKind = "file-launch"
	KindObjectStream     FindingKind = "object-stream"
	KindRemoteGoto       FindingKind = "remote-goto"
	KindXFAForm          FindingKind = "xfa-form"
	KindReverseShell     FindingKind = "reverse-shell"
)

// Severity ranks a single finding. The zero value is SeverityLow.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "low"
}

// MarshalText implements encoding.TextMarshaler so severities serialize
// as their names in JSON responses.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RiskLevel is the aggregate classification of a full scan.
type RiskLevel int

const (
	RiskSafe RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[RiskLevel]string{
	RiskSafe:     "safe",
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

func (r RiskLevel) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return "safe"
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Finding is one detected security issue. Findings are immutable once
// created; a scan emits them in stage order.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// ScanResult is the outcome of validating one uploaded file.
// IsValid is true iff Findings is empty. ContentHash is the SHA-256 of the
// exact input bytes and is computed even when validation fails, so
// quarantined and duplicate files can still be identified.
type ScanResult struct {
	IsValid     bool      `json:"is_valid"`
	Findings    []Finding `json:"findings"`
	ContentHash string    `json:"content_hash"`
	Risk        RiskLevel `json:"risk_level"`
}
