package batch

func (s *Scanner) processResults() {
	for entry := range s.results {
		s.Report.Add(entry)

		switch {
		case entry.Error != "":
			s.log.Warnw("scan error", "path", entry.Path, "error", entry.Error)
		case !entry.Valid:
			s.log.Warnw("dangerous content detected",
				"path", entry.Path, "risk", entry.Risk, "findings", len(entry.Findings))
		default:
			s.log.Debugw("clean", "path", entry.Path)
		}
	}
	s.Report.Finalize()
	close(s.done)
}
