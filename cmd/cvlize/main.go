// cvlize is the CV analysis backend: an HTTP API for uploading,
// scoring and rewriting resumes, plus a batch security scanner for
// directories of PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cvlize",
	Short: "CV analysis backend and PDF security scanner",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, scanCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
