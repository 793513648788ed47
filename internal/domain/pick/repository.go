package pick

import (
	"context"

	"github.com/pickemhq/pickem-api/internal/domain/user"
)

// Repository exposes pick writes, the week-status flag and the read views
// built on picks.
type Repository interface {
	// SaveWeekPicks upserts the batch (last write wins per user/week/game)
	// and flips the week-status flag to true, atomically.
	// ErrUnknownGame when a pick references a game not on the schedule.
	SaveWeekPicks(ctx context.Context, userID int64, week int, picks []Pick) error

	GetWeekStatus(ctx context.Context, userID int64, week int) (WeekStatus, bool, error)
	SetWeekStatus(ctx context.Context, userID int64, week int, hasPicks bool) error

	// ListSaved returns the user's picks joined with game metadata, most
	// recent week first; week filters when non-nil.
	ListSaved(ctx context.Context, userID int64, week *int) ([]SavedPick, error)
	// ListWeekDetail returns every pick of a week joined with username and
	// the ingested winner.
	ListWeekDetail(ctx context.Context, week int) ([]WeekDetail, error)
	// ListByGame returns all picks placed on one game.
	ListByGame(ctx context.Context, gameID int64) ([]Pick, error)
	// SetCorrectness marks is_correct for the given users' picks on a game.
	SetCorrectness(ctx context.Context, gameID int64, correctUserIDs, incorrectUserIDs []int64) error

	// GrandTotals returns one row per user (including users with no picks)
	// with the count of correct picks over weeks <= throughWeek, ordered by
	// total descending, username ascending.
	GrandTotals(ctx context.Context, throughWeek int) ([]user.GrandTotal, error)
}
