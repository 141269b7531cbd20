package models

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	SessionID     string    `json:"session_id"`
	Filename      string    `json:"filename"`
	FileHash      string    `json:"file_hash"`
	ExtractedText string    `json:"extracted_text"`
	ParsedData    *ParsedCV `json:"parsed_data,omitempty"`
	Duplicate     bool      `json:"duplicate,omitempty"`
}

type AnalyzeRequest struct {
	SessionID      string `json:"session_id"`
	JobDescription string `json:"job_description"`
}

type AnalyzeResponse struct {
	Analysis    *CVAnalysis  `json:"analysis"`
	OptimizedCV *OptimizedCV `json:"optimized_cv"`
	Cached      bool         `json:"cached,omitempty"`
}

// SecurityError is the 400 payload returned when an upload fails the
// content security scan.
type SecurityError struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Findings  []Finding `json:"findings"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// APIError is the generic error payload.
type APIError struct {
	Error string `json:"error"`
}

// Job is one file queued for a batch security scan.
type Job struct {
	FilePath string
}
