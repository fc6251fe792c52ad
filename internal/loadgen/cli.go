package loadgen

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/modelserve/scored/pkg/logger"
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "loadtest_" + timestamp + ".log"
	}

	if err := logger.Init(logger.WithFile(logFile)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Scored Load Test Tool
=====================

A concurrent tool for exercising the scoring service.

Usage:
  go run cmd/loadtest/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of score requests to generate and submit (default 10000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -max-features int
        Largest generated feature vector (default 128)
  -bad-ratio float
        Fraction of deliberately invalid payloads (default 0.05)
  -verify-echo
        Check responses against sent features (identity model only)
  -recent int
        Number of recent outcomes to fetch after the run (default 50)
  -log string
        Log file for test output (default: loadtest_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/loadtest/main.go

  # Hammer the admission gate
  go run cmd/loadtest/main.go -requests 50000 -workers 64

  # Verify the identity model end to end
  go run cmd/loadtest/main.go -verify-echo -bad-ratio 0
`)
}
