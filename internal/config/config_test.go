package config_test

import (
	"testing"

	"github.com/ewhitmore/fundboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.RefreshIntervalMin, convey.ShouldEqual, 0)
			convey.So(cfg.AusterityStart, convey.ShouldEqual, 2008)
			convey.So(cfg.RecoveryStart, convey.ShouldEqual, 2016)
			convey.So(cfg.ExportDir, convey.ShouldEqual, "exports")
		})
	})
}
