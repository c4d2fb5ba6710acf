package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/ewhitmore/fundboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetURL, convey.ShouldEqual, "")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 30_000)
				convey.So(cfg.AusterityStart, convey.ShouldEqual, 2008)
				convey.So(cfg.RecoveryStart, convey.ShouldEqual, 2016)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FUNDBOARD_ADDR", ":8080")
			_ = os.Setenv("FUNDBOARD_DATASET_URL", "https://registry.example/funding.csv")
			_ = os.Setenv("FUNDBOARD_FETCH_TIMEOUT_MS", "5000")
			_ = os.Setenv("FUNDBOARD_REFRESH_INTERVAL_MIN", "60")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetURL, convey.ShouldEqual, "https://registry.example/funding.csv")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.RefreshIntervalMin, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":7070"
dataset_path: testdata/funding.csv
austerity_start: 2009
recovery_start: 2017
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUNDBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "testdata/funding.csv")
				convey.So(cfg.AusterityStart, convey.ShouldEqual, 2009)
				convey.So(cfg.RecoveryStart, convey.ShouldEqual, 2017)
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 30_000) // From defaults
			})
		})

		convey.Convey("When env vars and a file are both present", func() {
			tmpFile := createTempConfigFile("addr: \":7070\"\nrefresh_interval_min: 30\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUNDBOARD_CONFIG", tmpFile)
			_ = os.Setenv("FUNDBOARD_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RefreshIntervalMin, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When the addr is emptied", func() {
			_ = os.Setenv("FUNDBOARD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation rejects the config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the era boundaries do not ascend", func() {
			_ = os.Setenv("FUNDBOARD_AUSTERITY_START", "2016")
			_ = os.Setenv("FUNDBOARD_RECOVERY_START", "2008")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation rejects the config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("FUNDBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"FUNDBOARD_CONFIG",
		"FUNDBOARD_ADDR",
		"FUNDBOARD_DATASET_URL",
		"FUNDBOARD_DATASET_PATH",
		"FUNDBOARD_FETCH_TIMEOUT_MS",
		"FUNDBOARD_REFRESH_INTERVAL_MIN",
		"FUNDBOARD_AUSTERITY_START",
		"FUNDBOARD_RECOVERY_START",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fundboard-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
