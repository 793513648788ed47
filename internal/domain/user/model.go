package user

import (
	"errors"
	"time"
)

// ErrDuplicateUsername is returned by repositories when a create collides
// with an existing username (exact, case-sensitive match).
var ErrDuplicateUsername = errors.New("username already exists")

type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// GrandTotal is one leaderboard row: a user and their cumulative count of
// correct picks up to and including the queried week.
type GrandTotal struct {
	UserID   int64
	Username string
	Total    int
}
