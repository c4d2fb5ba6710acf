package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewhitmore/fundboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const datasetHeader = "year,gia_gbp_millions,voluntary_gbp_millions,investment_gbp_millions," +
	"services_gbp_millions,other_gbp_millions,nominal_gbp_millions,total_y2000_gbp_millions," +
	"gia_as_percent_of_peak_gia\n"

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func writeDataset(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funding.csv")
	if err := os.WriteFile(path, []byte(datasetHeader+rows), 0600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestReportRun(t *testing.T) {
	convey.Convey("Given a report config pointing at the embedded sample", t, func() {
		outDir := filepath.Join(t.TempDir(), "out")
		config := &Config{
			OutputDir: outDir,
			Timeout:   5 * time.Second,
		}

		convey.Convey("When running the report", func() {
			err := Run(context.Background(), config)

			convey.Convey("Then the CSV bundle is written", func() {
				convey.So(err, convey.ShouldBeNil)

				for _, name := range []string{"metrics.csv", "summary.csv", "manifest.json"} {
					_, statErr := os.Stat(filepath.Join(outDir, name))
					convey.So(statErr, convey.ShouldBeNil)
				}
			})
		})
	})
}

func TestReportRunLocalDataset(t *testing.T) {
	convey.Convey("Given a local dataset with custom era boundaries", t, func() {
		path := writeDataset(t,
			"2004,24.0,3.0,1.0,2.0,0.5,30.5,28.0,0.80\n"+
				"2005,25.0,3.5,1.0,2.0,0.5,32.0,29.1,0.83\n")
		config := &Config{
			DatasetPath:    path,
			OutputDir:      filepath.Join(t.TempDir(), "out"),
			AusterityStart: 2005,
			RecoveryStart:  2010,
		}

		convey.Convey("When running the report", func() {
			err := Run(context.Background(), config)

			convey.Convey("Then it completes using the supplied boundaries", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestReportRunFailures(t *testing.T) {
	convey.Convey("Given datasets that cannot be derived", t, func() {
		convey.Convey("When a year has zero total income", func() {
			path := writeDataset(t, "2004,0,0,0,0,0,0,0,0.80\n")
			config := &Config{DatasetPath: path, OutputDir: t.TempDir()}

			err := Run(context.Background(), config)

			convey.Convey("Then the run aborts", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "derivation failed")
			})
		})

		convey.Convey("When the latest year has no peak share", func() {
			path := writeDataset(t,
				"2004,24.0,3.0,1.0,2.0,0.5,30.5,28.0,0.80\n"+
					"2005,25.0,3.5,1.0,2.0,0.5,32.0,29.1,\n")
			config := &Config{DatasetPath: path, OutputDir: t.TempDir()}

			err := Run(context.Background(), config)

			convey.Convey("Then the run aborts", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the dataset path does not exist", func() {
			config := &Config{
				DatasetPath: filepath.Join(t.TempDir(), "missing.csv"),
				OutputDir:   t.TempDir(),
			}

			err := Run(context.Background(), config)

			convey.Convey("Then the load failure is surfaced", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "dataset load failed")
			})
		})
	})
}
