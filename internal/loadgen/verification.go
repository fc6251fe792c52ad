package loadgen

import (
	"context"
	"fmt"

	"github.com/modelserve/scored/pkg/logger"
)

// echoMatches reports whether the identity model echoed the sent vector.
func echoMatches(sent, got []float64) bool {
	if len(sent) != len(got) {
		return false
	}
	for i := range sent {
		if sent[i] != got[i] {
			return false
		}
	}
	return true
}

// fetchRecentOutcomes pulls the recent-outcome window from the service.
func fetchRecentOutcomes(ctx context.Context, config *Config, stats *Stats) ([]OutcomeRecord, error) {
	if config.RecentN <= 0 {
		return nil, nil
	}

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/requests?limit=%d", config.BaseURL, config.RecentN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent outcomes: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent outcomes: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("recent outcomes request failed with status: %d", resp.StatusCode)
	}

	var outcomes []OutcomeRecord
	if err := unmarshalJSON(body, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to parse recent outcomes: %w", err)
	}

	stats.OutcomesFetched = len(outcomes)
	return outcomes, nil
}

// verifyResults cross-checks the submission counters against the service view.
func verifyResults(ctx context.Context, config *Config, outcomes []OutcomeRecord, stats *Stats) error {
	logger.Get().Info(ctx, "verifying results")

	if stats.RequestsSubmitted != stats.RequestsGenerated {
		return fmt.Errorf("submitted %d of %d generated requests", stats.RequestsSubmitted, stats.RequestsGenerated)
	}

	if config.VerifyEcho && stats.EchoMismatches > 0 {
		return fmt.Errorf("%d responses did not echo the sent features", stats.EchoMismatches)
	}

	// The window is bounded, so it can only confirm recent statuses.
	byStatus := make(map[string]int)
	for _, outcome := range outcomes {
		byStatus[outcome.Status]++
	}
	if len(outcomes) > 0 {
		logger.Get().Info(ctx, "recent outcome window",
			logger.Int("fetched", len(outcomes)),
			logger.Any("byStatus", byStatus))
	}

	if stats.RequestsFailed > 0 {
		logger.Get().Warn(ctx, "some requests failed outright",
			logger.Int("failed", stats.RequestsFailed))
	}

	logger.Get().Info(ctx, "result verification completed")
	return nil
}
