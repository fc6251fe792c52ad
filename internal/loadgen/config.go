package loadgen

import "time"

// Config holds configuration for the scoring load test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of score requests to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	MaxFeatures int           // Largest generated feature vector
	BadRatio    float64       // Fraction of deliberately invalid payloads
	VerifyEcho  bool          // Check responses against sent features (identity model)
	RecentN     int           // Number of recent outcomes to fetch
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Payload represents one score request ready for submission
type Payload struct {
	ID       string    // client-side tag, not sent on the wire
	Body     []byte    // serialized {"X": [...]} document
	Features []float64 // the generated vector, nil for invalid payloads
	Invalid  bool      // true when the payload is deliberately broken
}

// ScoreResponse represents the response from a score request
type ScoreResponse struct {
	Score []float64 `json:"score"`
}

// OutcomeRecord mirrors one entry of the recent-outcome window
type OutcomeRecord struct {
	RequestID string  `json:"request_id"`
	Status    string  `json:"status"`
	Duration  float64 `json:"duration_ms"`
}

// Stats holds load test statistics
type Stats struct {
	RequestsGenerated int
	RequestsSubmitted int
	RequestsOK        int
	RequestsBadInput  int
	RequestsRejected  int
	RequestsTimedOut  int
	RequestsFailed    int
	EchoMismatches    int
	OutcomesFetched   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
