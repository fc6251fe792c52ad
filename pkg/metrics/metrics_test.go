package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording score outcomes", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordScoreOutcome("ok")
					RecordScoreOutcome("bad_input")
					RecordScoreOutcome("overloaded")
					RecordScoreOutcome("timeout")
					RecordScoreOutcome("model_failure")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording latencies", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordScoreLatency(12.5)
					RecordPredictLatency(8.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording quality counters", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordValidationError("missing_features")
					RecordOverloadReject()
					RecordPredictTimeout()
					RecordModelFailure()
					RecordModelHealthCheck()
				}, ShouldNotPanic)
			})
		})

		Convey("When updating gauges", func() {
			Convey("Then it should update without panicking", func() {
				So(func() {
					UpdateInFlight(3)
					UpdateGateCapacity(64)
					UpdateGateUtilization(0.05)
					UpdateModelReady(true)
					UpdateModelReady(false)
					UpdateRecentStoreSize(10)
					UpdateRecentStoreCapacity(256)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					RecordHTTPRequest("score", "POST", "200")
					RecordHTTPRequestDuration("score", "POST", "200", 4.2)
					RecordErrorByComponent("dispatch", "timeout")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should record without panicking", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.7)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the service registry", t, func() {
		Convey("When gathering registered metrics", func() {
			registry := GetRegistry()
			So(registry, ShouldNotBeNil)

			RecordScoreOutcome("ok")
			families, err := registry.Gather()

			Convey("Then the scoring families should be present", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["scored_scoring_requests_total"], ShouldBeTrue)
			})
		})
	})
}
