package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	vectorShapeDivisor = 8
	badKindDivisor     = 4
)

// Constants for feature vector shapes.
const (
	tinyVectorLen    = 1
	smallVectorMin   = 2
	smallVectorRange = 6
	midVectorMin     = 8
	midVectorRange   = 24
	largeVectorMin   = 32
	largeVectorRange = 96
)

// Constants for feature value ranges.
const (
	unitRange     = 1.0
	wideRangeMin  = -10.0
	wideRangeSpan = 20.0
)

// Constants for vector shape cases.
const (
	caseTinyVector   = 0
	caseSmallVector  = 1
	caseMidVector    = 2
	caseLargeVector  = 3
	caseNegativeVals = 4
)

// Constants for invalid payload cases.
const (
	caseMissingX  = 0
	caseEmptyX    = 1
	caseStringX   = 2
	caseTruncated = 3
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// generatePayloads creates the specified number of score payloads.
func generatePayloads(ctx context.Context, config *Config, stats *Stats) ([]Payload, error) {
	logger.Get().Info(ctx, "generating score payloads",
		logger.Int("numRequests", config.NumRequests),
		logger.Float64("badRatio", config.BadRatio))

	payloads := make([]Payload, config.NumRequests)

	// Generate payloads concurrently
	type payloadResult struct {
		index   int
		payload Payload
		err     error
	}

	resultChan := make(chan payloadResult, config.NumRequests)

	// Use worker pool for payload generation
	workerCount := minInt(config.Workers, config.NumRequests)
	perWorker := config.NumRequests / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumRequests // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- payloadResult{index: i, err: ctx.Err()}
					return
				default:
					payload, err := generateSinglePayload(config)
					resultChan <- payloadResult{index: i, payload: payload, err: err}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumRequests; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during payload generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate payload %d: %w", result.index, result.err)
			}
			payloads[result.index] = result.payload
		}
	}

	stats.RequestsGenerated = len(payloads)
	logger.Get().Info(ctx, "generated payloads successfully", logger.Int("count", len(payloads)))

	return payloads, nil
}

// generateSinglePayload creates one payload, invalid with probability BadRatio.
func generateSinglePayload(config *Config) (Payload, error) {
	id := uuid.New().String()

	if getRandomFloat() < config.BadRatio {
		return Payload{
			ID:      id,
			Body:    generateInvalidBody(),
			Invalid: true,
		}, nil
	}

	features := generateFeatureVector(config.MaxFeatures)
	body, err := model.EncodeRequest(model.ScoreRequest{Features: features})
	if err != nil {
		return Payload{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	return Payload{
		ID:       id,
		Body:     body,
		Features: features,
	}, nil
}

// generateFeatureVector creates a vector with varied shape and value range.
func generateFeatureVector(maxFeatures int) []float64 {
	var length int
	negative := false

	switch getRandomInt(vectorShapeDivisor) {
	case caseTinyVector:
		length = tinyVectorLen
	case caseSmallVector:
		length = smallVectorMin + int(getRandomInt(smallVectorRange))
	case caseMidVector:
		length = midVectorMin + int(getRandomInt(midVectorRange))
	case caseLargeVector:
		length = largeVectorMin + int(getRandomInt(largeVectorRange))
	case caseNegativeVals:
		length = smallVectorMin + int(getRandomInt(smallVectorRange))
		negative = true
	default:
		length = smallVectorMin + int(getRandomInt(smallVectorRange))
	}

	if maxFeatures > 0 && length > maxFeatures {
		length = maxFeatures
	}

	features := make([]float64, length)
	for i := range features {
		if negative {
			features[i] = wideRangeMin + getRandomFloat()*wideRangeSpan
		} else {
			features[i] = getRandomFloat() * unitRange
		}
	}
	return features
}

// generateInvalidBody produces one of the rejected payload shapes.
func generateInvalidBody() []byte {
	switch getRandomInt(badKindDivisor) {
	case caseMissingX:
		return []byte(`{}`)
	case caseEmptyX:
		return []byte(`{"X":[]}`)
	case caseStringX:
		return []byte(`{"X":["a","b"]}`)
	case caseTruncated:
		return []byte(`{"X":[1,2`)
	default:
		return []byte(`{}`)
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
