package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ewhitmore/fundboard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "report_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the report tool.
func ShowHelp() {
	os.Stdout.WriteString(`Fundboard Report Tool
=====================

Derives funding metrics from the annual dataset and writes a CSV bundle
(per-year metrics, era summary and a JSON manifest) without running the
HTTP service.

Usage:
  go run cmd/report/main.go [options]

Options:
  -url string
        Remote dataset URL (takes effect when -path is empty)
  -path string
        Local dataset CSV path (falls back to the embedded sample)
  -out string
        Output directory for the CSV bundle (default "exports")
  -timeout duration
        Dataset fetch timeout (default 30s)
  -austerity int
        First year of the austerity era (default 2008)
  -recovery int
        First year of the recovery era (default 2016)
  -log string
        Log file for report output (default: report_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Report from the embedded sample dataset
  go run cmd/report/main.go

  # Report from a local CSV into a custom directory
  go run cmd/report/main.go -path data/funding.csv -out out/2026

  # Report from a remote dataset
  go run cmd/report/main.go -url https://example.org/funding.csv
`)
}
