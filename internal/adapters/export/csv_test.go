package export_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewhitmore/fundboard/internal/adapters/export"
	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func exportSnapshot() model.Snapshot {
	change := 4.0
	share := 0.9
	return model.Snapshot{
		ID:     "snap-7",
		Source: "test",
		Funding: []model.FundingRecord{
			{Year: 2010, GIA: 45, Nominal: 85},
			{Year: 2011, GIA: 44, Nominal: 87, GIAShareOfPeak: &share},
		},
		Series: []model.DerivedMetrics{
			{Year: 2010, Period: types.PeriodAusterity, DiversificationIndex: 0.6, GovernmentDependency: 0.53},
			{Year: 2011, Period: types.PeriodAusterity, DiversificationIndex: 0.61, GovernmentDependency: 0.51, RealChangePct: &change},
		},
		Summary: map[types.Period]model.PeriodSummary{
			types.PeriodAusterity: {
				Period: types.PeriodAusterity, MeanNominal: 86,
				MeanGovernmentDependencyPct: 51.8, MeanDiversification: 0.605, Years: 2,
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	So(err, ShouldBeNil)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	So(err, ShouldBeNil)
	return rows
}

func TestWriter_Write(t *testing.T) {
	Convey("Given a writer targeting a temp directory", t, func() {
		dir := t.TempDir()
		fixed := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
		writer := export.NewWriter(
			export.WithDirectory(dir),
			export.WithClock(func() time.Time { return fixed }),
			export.WithRunID(func() string { return "run-1" }),
		)

		Convey("When writing a snapshot", func() {
			manifest, err := writer.Write(context.Background(), exportSnapshot())

			Convey("Then the manifest describes the bundle", func() {
				So(err, ShouldBeNil)
				So(manifest.RunID, ShouldEqual, "run-1")
				So(manifest.SnapshotID, ShouldEqual, "snap-7")
				So(manifest.MetricsRows, ShouldEqual, 2)
				So(manifest.SummaryRows, ShouldEqual, 1)
			})

			Convey("And metrics.csv carries one row per year with empty undefined cells", func() {
				So(err, ShouldBeNil)
				rows := readCSV(t, filepath.Join(dir, "metrics.csv"))
				So(len(rows), ShouldEqual, 3)
				So(rows[0][0], ShouldEqual, "year")
				So(rows[1][0], ShouldEqual, "2010")
				So(rows[1][4], ShouldEqual, "") // first year: no real change
				So(rows[1][5], ShouldEqual, "") // null peak share stays empty
				So(rows[2][4], ShouldEqual, "4")
				So(rows[2][5], ShouldEqual, "0.9")
			})

			Convey("And summary.csv carries one row per era present", func() {
				So(err, ShouldBeNil)
				rows := readCSV(t, filepath.Join(dir, "summary.csv"))
				So(len(rows), ShouldEqual, 2)
				So(rows[1][0], ShouldEqual, string(types.PeriodAusterity))
				So(rows[1][4], ShouldEqual, "2")
			})

			Convey("And manifest.json round-trips", func() {
				So(err, ShouldBeNil)
				body, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
				So(err, ShouldBeNil)
				var m export.Manifest
				So(json.Unmarshal(body, &m), ShouldBeNil)
				So(m.RunID, ShouldEqual, "run-1")
				So(m.Files, ShouldResemble, []string{"metrics.csv", "summary.csv", "manifest.json"})
			})
		})

		Convey("When writing an empty snapshot", func() {
			_, err := writer.Write(context.Background(), model.Snapshot{})

			Convey("Then the empty-input kind is reported", func() {
				So(errors.Is(err, export.ErrEmptyInput), ShouldBeTrue)
			})
		})
	})
}
