package config_test

import (
	"runtime"
	"testing"

	"github.com/modelserve/scored/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Model, convey.ShouldEqual, "identity")
			convey.So(cfg.ThreadSafe, convey.ShouldBeFalse)
			convey.So(cfg.PredictTimeoutMS, convey.ShouldEqual, 2_000)
			convey.So(cfg.GateCapacity, convey.ShouldEqual, runtime.NumCPU()*16)
			convey.So(cfg.MaxFeatures, convey.ShouldEqual, 10_000)
			convey.So(cfg.RecentSize, convey.ShouldEqual, 256)
			convey.So(cfg.Canary, convey.ShouldResemble, []float64{0})
		})
	})
}
