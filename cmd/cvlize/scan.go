package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mu7ammad-3li/cv-lize/internal/batch"
	"github.com/mu7ammad-3li/cv-lize/internal/logging"
	"github.com/mu7ammad-3li/cv-lize/internal/quarantine"
)

var (
	scanQuarantine bool
	scanWorkers    int
	scanJSONOut    string
	scanXLSXOut    string
	scanHTMLOut    string
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a directory of PDFs for dangerous content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if scanWorkers > 0 {
			cfg.Workers = scanWorkers
		}

		log, err := logging.New(cfg.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		var qs *quarantine.Store
		if scanQuarantine {
			if qs, err = quarantine.NewStore(cfg.QuarantineDir); err != nil {
				return err
			}
		}

		s := batch.NewScanner(cfg, log, args[0], qs)
		s.Start()
		s.Wait()

		printSummary(s)

		if scanJSONOut != "" {
			if err := s.Report.SaveJSON(scanJSONOut); err != nil {
				return fmt.Errorf("saving JSON report: %w", err)
			}
			fmt.Printf("JSON report saved to %s\n", scanJSONOut)
		}
		if scanXLSXOut != "" {
			if err := s.Report.SaveXLSX(scanXLSXOut); err != nil {
				return fmt.Errorf("saving XLSX report: %w", err)
			}
			fmt.Printf("XLSX report saved to %s\n", scanXLSXOut)
		}
		if scanHTMLOut != "" {
			if err := s.Report.SaveHTML(scanHTMLOut); err != nil {
				return fmt.Errorf("saving HTML report: %w", err)
			}
			fmt.Printf("HTML report saved to %s\n", scanHTMLOut)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanQuarantine, "quarantine", false, "move flagged files into the quarantine directory")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "number of concurrent workers (default: auto)")
	scanCmd.Flags().StringVar(&scanJSONOut, "json", "", "write a JSON report to this path")
	scanCmd.Flags().StringVar(&scanXLSXOut, "xlsx", "", "write an XLSX report to this path")
	scanCmd.Flags().StringVar(&scanHTMLOut, "html", "", "write an HTML report to this path")
}

func printSummary(s *batch.Scanner) {
	sum := s.Report.Summary
	fmt.Printf("\nScanned %d PDF files in %s\n", sum.TotalFiles, sum.ScanDuration.Round(time.Millisecond))
	color.Green("  clean:   %d", sum.CleanFiles)
	if sum.FlaggedFiles > 0 {
		color.Red("  flagged: %d", sum.FlaggedFiles)
	} else {
		fmt.Printf("  flagged: %d\n", sum.FlaggedFiles)
	}
	if sum.ErrorFiles > 0 {
		color.Yellow("  errors:  %d", sum.ErrorFiles)
	}

	for _, e := range s.Report.Flagged() {
		color.Red("\n%s (%s)", e.Path, e.Risk)
		for _, f := range e.Findings {
			fmt.Printf("  - [%s] %s\n", f.Severity, f.Message)
		}
		if e.Quarantined != "" {
			fmt.Printf("  quarantined to %s\n", e.Quarantined)
		}
	}
}
