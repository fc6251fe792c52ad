package loadgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"

	"github.com/modelserve/scored/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a raw JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitResult is one terminal bucket for a submitted payload.
type submitResult int

const (
	resultOK submitResult = iota
	resultBadInput
	resultRejected
	resultTimedOut
	resultFailed
	resultEchoMismatch
)

// submitPayloads submits payloads concurrently using a worker pool.
func submitPayloads(ctx context.Context, config *Config, payloads []Payload, stats *Stats) error {
	logger.Get().Info(ctx, "submitting payloads",
		logger.Int("count", len(payloads)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score"

	// Counters for statistics
	var (
		submitted int64
		ok        int64
		badInput  int64
		rejected  int64
		timedOut  int64
		failed    int64
		mismatch  int64
	)

	// Create worker pool
	payloadChan := make(chan Payload, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for payload := range payloadChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSinglePayload(ctx, client, url, payload, config.VerifyEcho)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case resultOK:
						atomic.AddInt64(&ok, 1)
					case resultBadInput:
						atomic.AddInt64(&badInput, 1)
					case resultRejected:
						atomic.AddInt64(&rejected, 1)
					case resultTimedOut:
						atomic.AddInt64(&timedOut, 1)
					case resultFailed:
						atomic.AddInt64(&failed, 1)
					case resultEchoMismatch:
						atomic.AddInt64(&ok, 1)
						atomic.AddInt64(&mismatch, 1)
					}
				}
			}
		}()
	}

	// Send payloads to workers
	go func() {
		defer close(payloadChan)
		for _, payload := range payloads {
			select {
			case <-ctx.Done():
				return
			case payloadChan <- payload:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsOK = int(atomic.LoadInt64(&ok))
	stats.RequestsBadInput = int(atomic.LoadInt64(&badInput))
	stats.RequestsRejected = int(atomic.LoadInt64(&rejected))
	stats.RequestsTimedOut = int(atomic.LoadInt64(&timedOut))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))
	stats.EchoMismatches = int(atomic.LoadInt64(&mismatch))

	logger.Get().Info(ctx, "payload submission completed",
		logger.Int("ok", stats.RequestsOK),
		logger.Int("badInput", stats.RequestsBadInput),
		logger.Int("rejected", stats.RequestsRejected),
		logger.Int("timedOut", stats.RequestsTimedOut),
		logger.Int("failed", stats.RequestsFailed),
		logger.Int("echoMismatches", stats.EchoMismatches))

	return nil
}

// submitSinglePayload submits one payload and buckets the outcome.
func submitSinglePayload(ctx context.Context, client *HTTPClient, url string, payload Payload, verifyEcho bool) submitResult {
	resp, err := client.Post(ctx, url, payload.Body)
	if err != nil {
		return resultFailed
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return resultFailed
	}

	switch resp.StatusCode {
	case StatusOK:
		var score ScoreResponse
		if err := unmarshalJSON(body, &score); err != nil {
			return resultFailed
		}
		if verifyEcho && !payload.Invalid && !echoMatches(payload.Features, score.Score) {
			return resultEchoMismatch
		}
		return resultOK
	case StatusBadRequest:
		return resultBadInput
	case StatusTooManyRequests:
		return resultRejected
	case StatusGatewayTimeout:
		return resultTimedOut
	default:
		return resultFailed
	}
}
