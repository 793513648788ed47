package postgres

import "time"

type pickTableModel struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	Week       int    `db:"week"`
	GameID     int64  `db:"game_id"`
	PickedTeam string `db:"picked_team"`
	IsCorrect  *bool  `db:"is_correct"`
}

type pickInsertModel struct {
	UserID     int64  `db:"user_id"`
	Week       int    `db:"week"`
	GameID     int64  `db:"game_id"`
	PickedTeam string `db:"picked_team"`
	IsCorrect  *bool  `db:"is_correct"`
}

type weekStatusTableModel struct {
	UserID    int64     `db:"user_id"`
	Week      int       `db:"week"`
	HasPicks  bool      `db:"has_picks"`
	UpdatedAt time.Time `db:"updated_at"`
}

type savedPickRowModel struct {
	UserID     int64     `db:"user_id"`
	Week       int       `db:"week"`
	GameID     int64     `db:"game_id"`
	PickedTeam string    `db:"picked_team"`
	IsCorrect  *bool     `db:"is_correct"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	GameDate   time.Time `db:"game_date"`
}

type weekDetailRowModel struct {
	UserID     int64   `db:"user_id"`
	Username   string  `db:"username"`
	Week       int     `db:"week"`
	GameID     int64   `db:"game_id"`
	PickedTeam string  `db:"picked_team"`
	IsCorrect  *bool   `db:"is_correct"`
	WinnerTeam *string `db:"winner_team"`
}
