package loadgen

import (
	"context"
	"fmt"
	"time"

	"github.com/modelserve/scored/pkg/logger"
)

// Run executes the complete scoring load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting scoring load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Float64("badRatio", config.BadRatio),
		logger.Bool("verifyEcho", config.VerifyEcho))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate payloads
	payloads, err := generatePayloads(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("payload generation failed: %w", err)
	}

	// Step 3: Submit payloads concurrently
	if err := submitPayloads(ctx, config, payloads, stats); err != nil {
		return fmt.Errorf("payload submission failed: %w", err)
	}

	// Step 4: Retrieve the recent-outcome window
	outcomes, err := fetchRecentOutcomes(ctx, config, stats)
	if err != nil {
		logger.Get().Warn(ctx, "failed to fetch recent outcomes", logger.Error(err))
	}

	// Step 5: Verify results
	if err := verifyResults(ctx, config, outcomes, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "load test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running and serving-ready.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsOK) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsOK", stats.RequestsOK),
		logger.Int("requestsBadInput", stats.RequestsBadInput),
		logger.Int("requestsRejected", stats.RequestsRejected),
		logger.Int("requestsTimedOut", stats.RequestsTimedOut),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("echoMismatches", stats.EchoMismatches),
		logger.Int("outcomesFetched", stats.OutcomesFetched),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
