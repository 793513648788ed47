package pick

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownGame is returned by repositories when a pick references a game
// that is not on the schedule.
var ErrUnknownGame = errors.New("pick references unknown game")

// Pick is one user's selected winner for one game in one week.
// IsCorrect stays nil until a result with a winner has been ingested.
type Pick struct {
	UserID     int64
	Week       int
	GameID     int64
	PickedTeam string
	IsCorrect  *bool
}

// WeekStatus is the denormalized "has this user submitted for this week"
// flag, unique per (user, week).
type WeekStatus struct {
	UserID    int64
	Week      int
	HasPicks  bool
	UpdatedAt time.Time
}

// SavedPick is a pick joined with its game's schedule metadata.
type SavedPick struct {
	UserID     int64
	Week       int
	GameID     int64
	PickedTeam string
	IsCorrect  *bool
	HomeTeam   string
	AwayTeam   string
	GameDate   time.Time
}

// WeekDetail is a pick joined with its owner's username and the ingested
// winner, for leaderboard rendering.
type WeekDetail struct {
	UserID     int64
	Username   string
	Week       int
	GameID     int64
	PickedTeam string
	IsCorrect  *bool
	WinnerTeam *string
}

// NormalizeTeam is the canonical form used when comparing a picked team
// against a result's winner: whitespace-trimmed and lowercased. Correctness
// is always derived through this function, never a database collation.
func NormalizeTeam(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
