package game

import (
	"context"
	"time"
)

// Repository exposes schedule reads.
type Repository interface {
	// List returns games ordered by week then game_date; week filters when
	// non-nil.
	List(ctx context.Context, week *int) ([]Game, error)
	// MinGameDateByWeek returns the earliest kickoff of a week; false when the
	// week has no games.
	MinGameDateByWeek(ctx context.Context, week int) (time.Time, bool, error)
}
