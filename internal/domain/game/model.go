package game

import "time"

// Game is one scheduled matchup. Code is the external fixture id of the
// sports-data provider and doubles as the primary key.
type Game struct {
	Code     int64
	WeekID   int
	HomeTeam string
	AwayTeam string
	GameDate time.Time
}
