package security

import (
	"regexp"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// Pattern couples a compiled byte regex with the finding it produces when
// the pattern matches uploaded content.
type Pattern struct {
	Regexp   *regexp.Regexp
	Kind     models.FindingKind
	Severity models.Severity
	Message  string
}

// Catalog is the static configuration of a Scanner: one pattern table per
// scan stage, in stage order. Catalogs are built once and never mutated.
type Catalog struct {
	Script       []Pattern
	EmbeddedFile []Pattern
	RemoteAccess []Pattern
	XFA          []Pattern
	ReverseShell []Pattern
}

// pdfMagic is the 4-byte signature every PDF must start with.
var pdfMagic = []byte("%PDF")

// Script and action markers inside PDF object syntax. These are
// case-sensitive, matching how the names appear in the object stream.
var scriptPatterns = []Pattern{
	script(`/JavaScript\s`, "/JavaScript"),
	script(`/JS\s`, "/JS"),
	{Regexp: regexp.MustCompile(`/AA\s`), Kind: models.KindAutoAction, Severity: models.SeverityHigh,
		Message: "auto-action dictionary detected: /AA (additional actions)"},
	{Regexp: regexp.MustCompile(`/OpenAction\s`), Kind: models.KindAutoAction, Severity: models.SeverityHigh,
		Message: "auto-action dictionary detected: /OpenAction (executes on open)"},
	{Regexp: regexp.MustCompile(`/RichMedia\s`), Kind: models.KindRichMedia, Severity: models.SeverityHigh,
		Message: "rich media object detected: /RichMedia"},
	script(`eval\s*\(`, "eval("),
	script(`replace\s*\(`, ".replace("),
	script(`unescape\s*\(`, "unescape("),
	script(`String\.fromCharCode`, "String.fromCharCode"),
	script(`/AcroForm\s`, "/AcroForm"),
}

func script(expr, name string) Pattern {
	return Pattern{
		Regexp:   regexp.MustCompile(expr),
		Kind:     models.KindScriptContent,
		Severity: models.SeverityHigh,
		Message:  "script pattern detected: " + name,
	}
}

// Embedded files, launch actions and object streams. Object streams can
// hide objects from naive scanners, so their mere presence is flagged.
var embeddedFilePatterns = []Pattern{
	{Regexp: regexp.MustCompile(`/EmbeddedFile\s`), Kind: models.KindEmbeddedFile, Severity: models.SeverityCritical,
		Message: "embedded file detected: /EmbeddedFile"},
	{Regexp: regexp.MustCompile(`/Launch\s`), Kind: models.KindFileLaunch, Severity: models.SeverityCritical,
		Message: "file launch action detected: /Launch"},
	{Regexp: regexp.MustCompile(`/ObjStm\s`), Kind: models.KindObjectStream, Severity: models.SeverityCritical,
		Message: "compressed object stream detected: /ObjStm (can conceal objects)"},
}

// /GoToR can coerce a reader into opening a remote URI (SMB credential
// harvesting).
var remoteAccessPatterns = []Pattern{
	{Regexp: regexp.MustCompile(`/GoToR\s`), Kind: models.KindRemoteGoto, Severity: models.SeverityCritical,
		Message: "remote file redirect detected: /GoToR (potential SMB attack)"},
}

var xfaPatterns = []Pattern{
	{Regexp: regexp.MustCompile(`/XFA\s`), Kind: models.KindXFAForm, Severity: models.SeverityHigh,
		Message: "XFA form detected (historically exploitable feature)"},
}

// Reverse shell idioms across common scripting and systems languages.
// Deliberately broad recall: a false positive costs a manual review, a
// false negative executes a backdoor. Matching is case-insensitive.
// Known tradeoff: the /dev/tcp patterns will fire on benign shell-scripting
// prose inside a resume.
var reverseShellPatterns = []Pattern{
	shell(`bash\s+-i\s+>&\s*/dev/(tcp|udp)`, "Bash interactive reverse shell"),
	shell(`/dev/(tcp|udp)/[\d\.\w\-:]+`, "Dev socket connection"),
	shell(`python\s+-c\s+.*import\s+socket`, "Python reverse shell"),
	shell(`socket\.socket\s*\(\s*socket\.AF_INET`, "Python TCP socket"),
	shell(`os\.system\s*\(\s*['"].*bash`, "Python OS system call"),
	shell(`socat\s+exec`, "Socat execution"),
	shell(`socat.*TCP`, "Socat TCP connection"),
	shell(`nc\s+[-nlvp].*bash`, "Netcat backdoor"),
	shell(`nc\s+.*-e\s+/bin/(bash|sh)`, "Netcat execution"),
	shell(`perl\s+.*socket`, "Perl socket"),
	shell(`php.*socket_create`, "PHP socket creation"),
	shell(`fsockopen`, "PHP fsockopen"),
	shell(`powershell.*TCPClient`, "PowerShell TCP client"),
	shell(`powershell\s+.*-NoP\s+-NonI\s+-W\s+Hidden`, "PowerShell hidden execution"),
	shell(`java\.net\.Socket`, "Java socket"),
	shell(`require\s+['"]socket['"]`, "Ruby socket"),
	shell(`bash\s+-i|sh\s+-i`, "Interactive shell flag"),
}

func shell(expr, technique string) Pattern {
	return Pattern{
		Regexp:   regexp.MustCompile(`(?i)` + expr),
		Kind:     models.KindReverseShell,
		Severity: models.SeverityCritical,
		Message:  "reverse shell pattern detected: " + technique,
	}
}

// DefaultCatalog returns the built-in pattern catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Script:       scriptPatterns,
		EmbeddedFile: embeddedFilePatterns,
		RemoteAccess: remoteAccessPatterns,
		XFA:          xfaPatterns,
		ReverseShell: reverseShellPatterns,
	}
}
