package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mu7ammad-3li/cv-lize/internal/export"
	"github.com/mu7ammad-3li/cv-lize/internal/extractor"
	"github.com/mu7ammad-3li/cv-lize/internal/markdown"
	"github.com/mu7ammad-3li/cv-lize/internal/models"
	"github.com/mu7ammad-3li/cv-lize/internal/storage"
)

// minTextLength rejects uploads whose extracted text is too short to be
// a resume.
const minTextLength = 50

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSize))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "missing file field in multipart form")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload body")
		return
	}
	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	fileType, err := extractor.DetectFileType(header.Filename, content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if fileType == models.FilePDF {
		result := s.scanner.Validate(content)
		if !result.IsValid {
			path, qerr := s.quarantine.Save(content, header.Filename, result.ContentHash)
			if qerr != nil {
				s.log.Errorw("quarantining rejected upload", "error", qerr)
			} else {
				s.log.Warnw("upload rejected by security scan",
					"file", header.Filename, "risk", result.Risk, "quarantined", path)
			}
			writeJSON(w, http.StatusBadRequest, models.SecurityError{
				Error:     "file failed security validation",
				Message:   "The uploaded PDF contains potentially dangerous content and was rejected.",
				Findings:  result.Findings,
				RiskLevel: result.Risk,
			})
			return
		}
	}

	hash := contentHash(content)

	if existing, err := s.store.FindByHash(hash); err == nil {
		s.log.Infow("duplicate upload, reusing session",
			"session", existing.SessionID, "hash", hash[:16])
		writeJSON(w, http.StatusOK, models.UploadResponse{
			SessionID:     existing.SessionID,
			Filename:      existing.OriginalFilename,
			FileHash:      existing.FileHash,
			ExtractedText: existing.ExtractedText,
			ParsedData:    existing.ParsedData,
			Duplicate:     true,
		})
		return
	}

	ext, err := s.extractors.ForType(fileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, err := ext.Extract(content)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("extracting text: %v", err))
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLength {
		writeError(w, http.StatusUnprocessableEntity,
			"could not extract enough text from the file, it may be image-based or empty")
		return
	}

	sess := &models.Session{
		SessionID:        uuid.NewString(),
		OriginalFilename: header.Filename,
		FileHash:         hash,
		FileType:         fileType,
		ExtractedText:    text,
		ParsedData:       s.parser.Parse(text),
	}
	if err := s.store.Create(sess); err != nil {
		s.log.Errorw("persisting session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store session")
		return
	}

	s.log.Infow("upload accepted", "session", sess.SessionID,
		"file", header.Filename, "type", fileType, "chars", len(text))

	writeJSON(w, http.StatusOK, models.UploadResponse{
		SessionID:     sess.SessionID,
		Filename:      sess.OriginalFilename,
		FileHash:      sess.FileHash,
		ExtractedText: sess.ExtractedText,
		ParsedData:    sess.ParsedData,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID == "" || strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "session_id and job_description are required")
		return
	}

	sess, err := s.store.Get(req.SessionID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	if err != nil {
		s.log.Errorw("loading session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	// Same job description analyzed already: serve the stored result.
	if sess.Analysis != nil && sess.JobDescription == req.JobDescription {
		writeJSON(w, http.StatusOK, models.AnalyzeResponse{
			Analysis:    sess.Analysis,
			OptimizedCV: sess.OptimizedCV,
			Cached:      true,
		})
		return
	}

	llmResult, err := s.llm.AnalyzeCV(r.Context(), sess.ParsedData, sess.ExtractedText, req.JobDescription)
	if err != nil {
		// The client returns a usable fallback alongside the error.
		s.log.Warnw("llm analysis degraded to fallback", "session", sess.SessionID, "error", err)
	}

	analysis := &models.CVAnalysis{
		Score:            llmResult.Score,
		Strengths:        llmResult.Strengths,
		Weaknesses:       llmResult.Weaknesses,
		Suggestions:      llmResult.Suggestions,
		ATSCompatibility: llmResult.ATSCompatibility,
		MatchPercentage:  llmResult.MatchPercentage,
		KeywordAnalysis:  s.keywords.Analyze(sess.ExtractedText, req.JobDescription),
		MissingKeywords:  s.keywords.Missing(sess.ExtractedText, req.JobDescription),
		Similarity:       s.keywords.Similarity(sess.ExtractedText, req.JobDescription),
	}
	optimized := &models.OptimizedCV{
		Markdown: llmResult.OptimizedCV,
		Sections: markdown.ParseSections(llmResult.OptimizedCV),
	}

	if err := s.store.UpdateAnalysis(sess.SessionID, req.JobDescription, analysis, optimized); err != nil {
		s.log.Errorw("saving analysis", "session", sess.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store analysis")
		return
	}

	s.log.Infow("analysis complete", "session", sess.SessionID,
		"score", analysis.Score, "similarity", analysis.Similarity)

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{
		Analysis:    analysis,
		OptimizedCV: optimized,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.store.Get(r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if sess.OptimizedCV == nil || sess.OptimizedCV.Markdown == "" {
		writeError(w, http.StatusConflict, "no optimized resume yet, run analyze first")
		return
	}

	md := sess.OptimizedCV.Markdown
	if included := r.URL.Query()["section"]; len(included) > 0 {
		md = markdown.FilterSections(md, included)
	}

	artifact, err := export.Render(format, md)
	if err != nil {
		s.log.Errorw("rendering download", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", format.Filename(sess.OriginalFilename)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count()
	status := "ok"
	if err != nil {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        status,
		"sessions":      count,
		"ai_configured": s.llm.Configured(),
	})
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
