package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ewhitmore/fundboard/internal/report"
)

// Default configuration constants.
const (
	defaultOutputDir      = "exports"
	defaultTimeout        = 30 * time.Second
	defaultRunTimeout     = 5 * time.Minute
	defaultAusterityStart = 2008
	defaultRecoveryStart  = 2016
)

func main() {
	var (
		datasetURL     = flag.String("url", "", "Remote dataset URL")
		datasetPath    = flag.String("path", "", "Local dataset CSV path (falls back to the embedded sample)")
		outputDir      = flag.String("out", defaultOutputDir, "Output directory for the CSV bundle")
		timeout        = flag.Duration("timeout", defaultTimeout, "Dataset fetch timeout")
		austerityStart = flag.Int("austerity", defaultAusterityStart, "First year of the austerity era")
		recoveryStart  = flag.Int("recovery", defaultRecoveryStart, "First year of the recovery era")
		logFile        = flag.String("log", "", "Log file for report output (default: report_log_TIMESTAMP.log)")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
		help           = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp()
		return
	}

	// Setup logging
	if err := report.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create report configuration
	config := &report.Config{
		DatasetURL:     *datasetURL,
		DatasetPath:    *datasetPath,
		OutputDir:      *outputDir,
		Timeout:        *timeout,
		AusterityStart: *austerityStart,
		RecoveryStart:  *recoveryStart,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	// Run the report
	if err := report.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
