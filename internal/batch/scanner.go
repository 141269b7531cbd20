// Package batch runs the PDF security scanner over a directory tree
// with a worker pool, producing an aggregate report.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mu7ammad-3li/cv-lize/internal/config"
	"github.com/mu7ammad-3li/cv-lize/internal/models"
	"github.com/mu7ammad-3li/cv-lize/internal/quarantine"
	"github.com/mu7ammad-3li/cv-lize/internal/reporting"
	"github.com/mu7ammad-3li/cv-lize/internal/security"
)

// Scanner orchestrates the walk, the workers and the report.
type Scanner struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	root       string
	jobs       chan models.Job
	results    chan reporting.Entry
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	validator  *security.Scanner
	quarantine *quarantine.Store // nil when quarantining is off
	Report     *reporting.Report
}

func NewScanner(cfg *config.Config, log *zap.SugaredLogger, root string, qs *quarantine.Store) *Scanner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scanner{
		cfg:        cfg,
		log:        log,
		root:       root,
		jobs:       make(chan models.Job, cfg.Workers*4),
		results:    make(chan reporting.Entry, cfg.Workers*4),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		validator:  security.NewScanner(),
		quarantine: qs,
		Report:     reporting.NewReport(root),
	}
}

// Start launches the worker pool, the result processor and the walker.
func (s *Scanner) Start() {
	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	go s.processResults()
	go s.walkFiles()
}

// Wait blocks until every queued file has been scanned and the report
// is finalized.
func (s *Scanner) Wait() {
	s.wg.Wait()
	close(s.results)
	<-s.done
}

// Stop cancels an in-flight scan.
func (s *Scanner) Stop() {
	s.cancel()
}
