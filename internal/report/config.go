package report

import "time"

// Config holds configuration for one report run
type Config struct {
	DatasetURL     string        // Remote dataset URL, optional
	DatasetPath    string        // Local dataset path, optional
	OutputDir      string        // Directory for the exported CSV bundle
	Timeout        time.Duration // Dataset fetch timeout
	AusterityStart int           // First year of the austerity era
	RecoveryStart  int           // First year of the recovery era
	LogFile        string        // Log file for report output
	Verbose        bool          // Enable verbose logging
}

// Stats holds report run statistics
type Stats struct {
	RecordsLoaded  int
	PointsDerived  int
	ErasSummarized int
	GapYears       int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
