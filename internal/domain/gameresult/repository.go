package gameresult

import "context"

// Repository exposes result upserts and reads.
type Repository interface {
	// Upsert inserts or replaces the result keyed by game_id.
	Upsert(ctx context.Context, result Result) error
	// ListByGameIDs returns results for the known ids only; unknown ids are
	// silently absent from the output.
	ListByGameIDs(ctx context.Context, gameIDs []int64) ([]Result, error)
}
