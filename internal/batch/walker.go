package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

func (s *Scanner) walkFiles() {
	defer close(s.jobs)

	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.log.Warnw("inaccessible path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".pdf" {
			return nil
		}

		select {
		case <-s.ctx.Done():
			return filepath.SkipAll
		case s.jobs <- models.Job{FilePath: path}:
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("walking directory", "root", s.root, "error", err)
	}
}
