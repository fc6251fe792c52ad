package repository

import (
	"context"
	"sync"

	"github.com/modelserve/scored/internal/domain/model"
	"github.com/modelserve/scored/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultCapacity = 256
)

// RingStore implements Store with a fixed-size ring buffer. The oldest
// outcome is evicted when the buffer is full.
type RingStore struct {
	mu       sync.RWMutex
	data     []model.Outcome
	capacity int
	count    int
	head     int // index of the oldest element
	tail     int // index of the next write

	totals map[string]int64
}

// Option applies a configuration option to the RingStore.
type Option func(*RingStore)

// WithCapacity sets the maximum number of retained outcomes.
func WithCapacity(capacity int) Option {
	return func(s *RingStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// NewRingStore creates a recent-outcome store with configuration options.
func NewRingStore(opts ...Option) *RingStore {
	s := &RingStore{
		capacity: defaultCapacity,
		totals:   make(map[string]int64),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.data = make([]model.Outcome, s.capacity)

	metrics.UpdateRecentStoreCapacity(s.capacity)
	metrics.UpdateRecentStoreSize(0)

	return s
}

// Add appends an outcome, evicting the oldest when full.
func (s *RingStore) Add(outcome model.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[s.tail] = outcome
	s.tail = (s.tail + 1) % s.capacity

	if s.count < s.capacity {
		s.count++
	} else {
		// Full: the write overwrote the oldest element.
		s.head = (s.head + 1) % s.capacity
	}

	s.totals[outcome.Status]++
	metrics.UpdateRecentStoreSize(s.count)
}

// Recent returns up to n outcomes, newest first.
func (s *RingStore) Recent(_ context.Context, n int) []model.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || s.count == 0 {
		return []model.Outcome{}
	}
	if n > s.count {
		n = s.count
	}

	out := make([]model.Outcome, n)
	for i := 0; i < n; i++ {
		// Walk backwards from the newest element.
		idx := (s.tail - 1 - i + s.capacity*2) % s.capacity
		out[i] = s.data[idx]
	}
	return out
}

// Count returns the number of retained outcomes.
func (s *RingStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// TotalByStatus returns cumulative terminal-outcome counts since startup.
func (s *RingStore) TotalByStatus(_ context.Context) map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64, len(s.totals))
	for status, total := range s.totals {
		out[status] = total
	}
	return out
}

// Capacity returns the configured buffer capacity.
func (s *RingStore) Capacity() int {
	return s.capacity
}
