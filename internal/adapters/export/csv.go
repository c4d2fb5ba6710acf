// Package export writes analysis snapshots to CSV bundles on disk.
//
// A bundle is three files in the target directory: metrics.csv (one row
// per year), summary.csv (one row per era), and manifest.json describing
// the run. Undefined values (first-year real change, missing peak share)
// are exported as empty cells, never as zero.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
	"github.com/google/uuid"
)

// File and directory permission constants.
const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Bundle file names.
const (
	metricsFile  = "metrics.csv"
	summaryFile  = "summary.csv"
	manifestFile = "manifest.json"
)

// Manifest describes one written export bundle.
type Manifest struct {
	RunID       string    `json:"run_id"`
	WrittenAt   time.Time `json:"written_at"`
	Source      string    `json:"source"`
	SnapshotID  string    `json:"snapshot_id"`
	MetricsRows int       `json:"metrics_rows"`
	SummaryRows int       `json:"summary_rows"`
	Files       []string  `json:"files"`
}

// Writer writes export bundles.
type Writer struct {
	dir      string
	now      func() time.Time
	newRunID func() string
}

// NewWriter creates a writer with configuration options.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		dir:      "exports",
		now:      time.Now,
		newRunID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write exports the snapshot as a CSV bundle and returns its manifest.
func (w *Writer) Write(ctx context.Context, snap model.Snapshot) (Manifest, error) {
	if err := ctx.Err(); err != nil {
		return Manifest{}, fmt.Errorf("export cancelled: %w", err)
	}
	if len(snap.Series) == 0 {
		return Manifest{}, ErrEmptyInput
	}
	if err := os.MkdirAll(w.dir, dirPermission); err != nil {
		return Manifest{}, fmt.Errorf("%s: %v: %w", w.dir, err, ErrCreateDir)
	}

	if err := w.writeMetrics(snap); err != nil {
		return Manifest{}, err
	}
	if err := w.writeSummary(snap); err != nil {
		return Manifest{}, err
	}

	manifest := Manifest{
		RunID:       w.newRunID(),
		WrittenAt:   w.now(),
		Source:      snap.Source,
		SnapshotID:  snap.ID,
		MetricsRows: len(snap.Series),
		SummaryRows: len(snap.Summary),
		Files:       []string{metricsFile, summaryFile, manifestFile},
	}
	if err := w.writeManifest(manifest); err != nil {
		return Manifest{}, err
	}

	return manifest, nil
}

func (w *Writer) writeMetrics(snap model.Snapshot) error {
	rows := [][]string{{
		"year", "period", "diversification_index", "government_dependency",
		"real_change_pct", "gia_as_percent_of_peak_gia",
	}}
	for i, m := range snap.Series {
		change := ""
		if m.RealChangePct != nil {
			change = formatFloat(*m.RealChangePct)
		}
		peak := ""
		if i < len(snap.Funding) && snap.Funding[i].GIAShareOfPeak != nil {
			peak = formatFloat(*snap.Funding[i].GIAShareOfPeak)
		}
		rows = append(rows, []string{
			strconv.Itoa(m.Year),
			string(m.Period),
			formatFloat(m.DiversificationIndex),
			formatFloat(m.GovernmentDependency),
			change,
			peak,
		})
	}
	return w.writeCSV(metricsFile, rows)
}

func (w *Writer) writeSummary(snap model.Snapshot) error {
	rows := [][]string{{
		"period", "mean_nominal_gbp_millions", "mean_government_dependency_pct",
		"mean_diversification_index", "years",
	}}
	// Iterate eras in chronological order for a stable file.
	for _, period := range types.Periods() {
		s, ok := snap.Summary[period]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(s.Period),
			formatFloat(s.MeanNominal),
			formatFloat(s.MeanGovernmentDependencyPct),
			formatFloat(s.MeanDiversification),
			strconv.Itoa(s.Years),
		})
	}
	return w.writeCSV(summaryFile, rows)
}

func (w *Writer) writeManifest(manifest Manifest) error {
	body, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(w.dir, manifestFile)
	if err := os.WriteFile(path, body, filePermission); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteFile)
	}
	return nil
}

func (w *Writer) writeCSV(name string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteFile)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteFile)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteFile)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
