package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/modelserve/scored/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumRequests = 10000
	defaultMaxFeatures = 128
	defaultBadRatio    = 0.05
	defaultRecentN     = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of score requests to generate and submit")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		maxFeatures = flag.Int("max-features", defaultMaxFeatures, "Largest generated feature vector")
		badRatio    = flag.Float64("bad-ratio", defaultBadRatio, "Fraction of deliberately invalid payloads")
		verifyEcho  = flag.Bool("verify-echo", false, "Check responses against sent features (identity model only)")
		recentN     = flag.Int("recent", defaultRecentN, "Number of recent outcomes to fetch after the run")
		logFile     = flag.String("log", "", "Log file for test output (default: loadtest_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	// Setup logging
	if err := loadgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &loadgen.Config{
		BaseURL:     *baseURL,
		NumRequests: *numRequests,
		Workers:     *workers,
		Timeout:     *timeout,
		MaxFeatures: *maxFeatures,
		BadRatio:    *badRatio,
		VerifyEcho:  *verifyEcho,
		RecentN:     *recentN,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the test
	if err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		return
	}
}
