// Package repository defines the recent-outcome store interface and errors.
package repository

import (
	"context"

	"github.com/modelserve/scored/internal/domain/model"
)

// Store retains a bounded window of terminal request outcomes for
// observability endpoints.
type Store interface {
	// Add appends an outcome, evicting the oldest when full.
	Add(outcome model.Outcome)

	// Recent returns up to n outcomes, newest first.
	Recent(ctx context.Context, n int) []model.Outcome

	// Count returns the number of retained outcomes.
	Count(ctx context.Context) int

	// TotalByStatus returns cumulative terminal-outcome counts since startup.
	TotalByStatus(ctx context.Context) map[string]int64
}
