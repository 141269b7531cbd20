package batch

import (
	"os"
	"path/filepath"

	"github.com/mu7ammad-3li/cv-lize/internal/reporting"
)

func (s *Scanner) worker() {
	defer s.wg.Done()

	for job := range s.jobs {
		select {
		case <-s.ctx.Done():
			return
		default:
			s.results <- s.scanFile(job.FilePath)
		}
	}
}

func (s *Scanner) scanFile(path string) reporting.Entry {
	entry := reporting.Entry{Path: path}

	if info, err := os.Stat(path); err == nil && info.Size() > s.cfg.MaxFileSize {
		entry.Error = "file exceeds size limit, skipped"
		return entry
	}

	content, err := os.ReadFile(path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	result := s.validator.Validate(content)
	entry.ContentHash = result.ContentHash
	entry.Valid = result.IsValid
	entry.Risk = result.Risk
	entry.Findings = result.Findings

	if !result.IsValid && s.quarantine != nil {
		qpath, qerr := s.quarantine.Save(content, filepath.Base(path), result.ContentHash)
		if qerr != nil {
			s.log.Errorw("quarantining flagged file", "path", path, "error", qerr)
		} else {
			entry.Quarantined = qpath
		}
	}
	return entry
}
