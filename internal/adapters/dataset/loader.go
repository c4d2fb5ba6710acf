// Package dataset loads the annual funding series from a local file, a
// remote registry URL, or the embedded sample, and parses it into domain
// records.
package dataset

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ewhitmore/fundboard/internal/domain/model"
)

// defaultFetchTimeout bounds remote fetches unless overridden.
const defaultFetchTimeout = 30 * time.Second

// sampleName identifies the embedded dataset in Result.Source.
const sampleName = "embedded:sample/funding.csv"

//go:embed sample/funding.csv
var sampleFS embed.FS

// expectedHeader is the dataset schema, in column order.
var expectedHeader = []string{
	"year",
	"gia_gbp_millions",
	"voluntary_gbp_millions",
	"investment_gbp_millions",
	"services_gbp_millions",
	"other_gbp_millions",
	"nominal_gbp_millions",
	"total_y2000_gbp_millions",
	"gia_as_percent_of_peak_gia",
}

// Result carries the parsed records and where they came from.
type Result struct {
	Records []model.FundingRecord
	Source  string
}

// Loader reads funding records from one of three sources, in precedence
// order: local path, remote URL, embedded sample.
type Loader struct {
	path    string
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewLoader creates a loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		timeout: defaultFetchTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads and parses the dataset, honoring ctx for cancellation of
// remote fetches.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	raw, source, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	records, err := parseCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &Result{Records: records, Source: source}, nil
}

func (l *Loader) read(ctx context.Context) (io.ReadCloser, string, error) {
	switch {
	case l.path != "":
		f, err := os.Open(l.path)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", l.path, ErrRead)
		}
		return f, l.path, nil

	case l.url != "":
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build request for %s: %w", l.url, ErrFetch)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %v: %w", l.url, err, ErrFetch)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, "", fmt.Errorf("fetch %s: status %d: %w", l.url, resp.StatusCode, ErrFetch)
		}
		// Read fully inside the timeout; the caller gets an in-memory reader.
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %v: %w", l.url, err, ErrFetch)
		}
		return io.NopCloser(strings.NewReader(string(body))), l.url, nil

	default:
		f, err := sampleFS.Open("sample/funding.csv")
		if err != nil {
			return nil, "", fmt.Errorf("open embedded sample: %w", ErrRead)
		}
		return f, sampleName, nil
	}
}

// parseCSV parses the dataset body, validating the header and every cell.
func parseCSV(r io.ReadCloser) ([]model.FundingRecord, error) {
	defer func() { _ = r.Close() }()

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, ErrRead)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var records []model.FundingRecord
	for row := 2; ; row++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", row, err, ErrRead)
		}

		rec, err := parseRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%d columns, want %d: %w", len(header), len(expectedHeader), ErrSchema)
	}
	for i, name := range expectedHeader {
		if strings.TrimSpace(header[i]) != name {
			return fmt.Errorf("column %d is %q, want %q: %w", i+1, header[i], name, ErrSchema)
		}
	}
	return nil
}

func parseRow(cells []string) (model.FundingRecord, error) {
	var rec model.FundingRecord

	year, err := strconv.Atoi(strings.TrimSpace(cells[0]))
	if err != nil {
		return rec, fmt.Errorf("year %q: %w", cells[0], ErrParse)
	}
	rec.Year = year

	fields := []struct {
		name string
		dst  *float64
	}{
		{"gia_gbp_millions", &rec.GIA},
		{"voluntary_gbp_millions", &rec.Voluntary},
		{"investment_gbp_millions", &rec.Investment},
		{"services_gbp_millions", &rec.Services},
		{"other_gbp_millions", &rec.Other},
		{"nominal_gbp_millions", &rec.Nominal},
		{"total_y2000_gbp_millions", &rec.RealY2000},
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(cells[i+1]), 64)
		if err != nil {
			return rec, fmt.Errorf("%s %q: %w", f.name, cells[i+1], ErrParse)
		}
		*f.dst = v
	}

	// The peak-share column may be empty: missing, not zero.
	if raw := strings.TrimSpace(cells[len(cells)-1]); raw != "" {
		share, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, fmt.Errorf("gia_as_percent_of_peak_gia %q: %w", raw, ErrParse)
		}
		if share < 0 || share > 1 {
			return rec, fmt.Errorf("gia_as_percent_of_peak_gia %v out of [0,1]: %w", share, ErrParse)
		}
		rec.GIAShareOfPeak = &share
	}

	return rec, nil
}
