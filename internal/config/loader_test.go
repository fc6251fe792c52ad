package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelserve/scored/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Model, convey.ShouldEqual, "identity")
				convey.So(cfg.PredictTimeoutMS, convey.ShouldEqual, 2_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCORED_ADDR", ":8080")
			_ = os.Setenv("SCORED_GATE_CAPACITY", "8")
			_ = os.Setenv("SCORED_PREDICT_TIMEOUT_MS", "500")
			_ = os.Setenv("SCORED_THREAD_SAFE", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.GateCapacity, convey.ShouldEqual, 8)
				convey.So(cfg.PredictTimeoutMS, convey.ShouldEqual, 500)
				convey.So(cfg.ThreadSafe, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
model: "linear"
linear_weights: [0.5, 1.5]
linear_bias: 0.1
gate_capacity: 4
predict_timeout_ms: 250
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SCORED_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Model, convey.ShouldEqual, "linear")
				convey.So(cfg.LinearWeights, convey.ShouldResemble, []float64{0.5, 1.5})
				convey.So(cfg.LinearBias, convey.ShouldEqual, 0.1)
				convey.So(cfg.GateCapacity, convey.ShouldEqual, 4)
				convey.So(cfg.PredictTimeoutMS, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
gate_capacity: 4
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SCORED_CONFIG", tmpFile)
			_ = os.Setenv("SCORED_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // Overridden by env
				convey.So(cfg.GateCapacity, convey.ShouldEqual, 4) // From file
			})
		})

		convey.Convey("When the model kind is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("SCORED_MODEL", "xgboost")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with ErrInvalidConfig", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the cel model has no expression", func() {
			clearConfigEnvVars()
			_ = os.Setenv("SCORED_MODEL", "cel")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"SCORED_CONFIG",
		"SCORED_ADDR",
		"SCORED_MODEL",
		"SCORED_MODEL_EXPR",
		"SCORED_GATE_CAPACITY",
		"SCORED_PREDICT_TIMEOUT_MS",
		"SCORED_THREAD_SAFE",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scored.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
