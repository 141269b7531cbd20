// Package server exposes the upload, analyze and download workflow over
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mu7ammad-3li/cv-lize/internal/ai"
	"github.com/mu7ammad-3li/cv-lize/internal/config"
	"github.com/mu7ammad-3li/cv-lize/internal/extractor"
	"github.com/mu7ammad-3li/cv-lize/internal/keywords"
	"github.com/mu7ammad-3li/cv-lize/internal/models"
	"github.com/mu7ammad-3li/cv-lize/internal/parser"
	"github.com/mu7ammad-3li/cv-lize/internal/quarantine"
	"github.com/mu7ammad-3li/cv-lize/internal/security"
	"github.com/mu7ammad-3li/cv-lize/internal/storage"
)

// purgeInterval is how often expired sessions are swept from the store.
const purgeInterval = time.Hour

type Server struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	store      *storage.Store
	quarantine *quarantine.Store
	scanner    *security.Scanner
	extractors *extractor.Factory
	parser     *parser.Parser
	keywords   *keywords.Analyzer
	llm        *ai.Client
	limits     *limiterSet
}

func New(cfg *config.Config, log *zap.SugaredLogger, store *storage.Store, qs *quarantine.Store, llm *ai.Client) *Server {
	return &Server{
		cfg:        cfg,
		log:        log,
		store:      store,
		quarantine: qs,
		scanner:    security.NewScanner(),
		extractors: extractor.NewFactory(),
		parser:     parser.New(),
		keywords:   keywords.NewAnalyzer(),
		llm:        llm,
		limits:     newLimiterSet(cfg),
	}
}

// Handler builds the route table. Exposed separately from Start so tests
// can mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.limits.upload(s.handleUpload))
	mux.HandleFunc("POST /api/analyze", s.limits.analyze(s.handleAnalyze))
	mux.HandleFunc("GET /api/session/{id}", s.limits.global(s.handleSession))
	mux.HandleFunc("GET /api/download/{id}/{format}", s.limits.global(s.handleDownload))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.logRequests(mux)
}

// Start serves until ctx is cancelled, sweeping expired sessions in the
// background.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.purgeLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("api server listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.PurgeExpired()
			if err != nil {
				s.log.Errorw("purging expired sessions", "error", err)
			} else if n > 0 {
				s.log.Infow("purged expired sessions", "count", n)
			}
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugw("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.APIError{Error: msg})
}
