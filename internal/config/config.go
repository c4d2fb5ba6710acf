// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration constants.
const (
	defaultAddr           = ":9090"
	defaultFetchTimeoutMS = 30_000
	defaultAusterityStart = 2008
	defaultRecoveryStart  = 2016
	defaultExportDir      = "exports"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DatasetURL points at the remote registry copy of the funding series.
	// Empty means the embedded sample is used unless DatasetPath is set.
	DatasetURL string `koanf:"dataset_url"`

	// DatasetPath reads the series from a local CSV file. Takes precedence
	// over DatasetURL.
	DatasetPath string `koanf:"dataset_path"`

	// FetchTimeoutMS bounds a remote dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RefreshIntervalMin re-fetches and re-derives periodically.
	// Zero disables periodic refresh.
	RefreshIntervalMin int `koanf:"refresh_interval_min"`

	// ExportDir is where CSV bundles land, both for the report CLI and
	// the service's POST /export endpoint.
	ExportDir string `koanf:"export_dir"`

	// AusterityStart and RecoveryStart are the era boundary years.
	AusterityStart int `koanf:"austerity_start"`
	RecoveryStart  int `koanf:"recovery_start"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           defaultAddr,
		FetchTimeoutMS: defaultFetchTimeoutMS,
		ExportDir:      defaultExportDir,
		AusterityStart: defaultAusterityStart,
		RecoveryStart:  defaultRecoveryStart,
	}
}
