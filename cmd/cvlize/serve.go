package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/ai"
	"github.com/mu7ammad-3li/cv-lize/internal/logging"
	"github.com/mu7ammad-3li/cv-lize/internal/quarantine"
	"github.com/mu7ammad-3li/cv-lize/internal/server"
	"github.com/mu7ammad-3li/cv-lize/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CV analysis API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := logging.New(cfg.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		qs, err := quarantine.NewStore(cfg.QuarantineDir)
		if err != nil {
			return err
		}

		llm := ai.NewClient(cfg)
		if !llm.Configured() {
			log.Warn("no OpenRouter API key set, analysis will use the local fallback")
		} else if err := llm.Ping(cmd.Context()); err != nil {
			log.Warnw("OpenRouter unreachable, analysis will degrade to the local fallback", "error", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, log, store, qs, llm).Start(ctx)
	},
}
