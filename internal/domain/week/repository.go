package week

import "context"

// Repository exposes week reads.
type Repository interface {
	// ListOrdered returns all weeks ordered by start_date ascending.
	ListOrdered(ctx context.Context) ([]Week, error)
}
