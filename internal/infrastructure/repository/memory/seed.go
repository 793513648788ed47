package memory

import (
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/week"
)

// Seed data for the no-database dev mode: the opening weeks of the 2025
// season with a handful of games each.

func SeedWeeks() []week.Week {
	return []week.Week{
		{ID: 1, StartDate: time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, StartDate: time.Date(2025, time.September, 9, 0, 0, 0, 0, time.UTC)},
		{ID: 3, StartDate: time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC)},
		{ID: 4, StartDate: time.Date(2025, time.September, 23, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedGames() []game.Game {
	return []game.Game{
		{Code: 13001, WeekID: 1, HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys", GameDate: time.Date(2025, time.September, 5, 0, 20, 0, 0, time.UTC)},
		{Code: 13002, WeekID: 1, HomeTeam: "Kansas City Chiefs", AwayTeam: "Baltimore Ravens", GameDate: time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)},
		{Code: 13003, WeekID: 1, HomeTeam: "Green Bay Packers", AwayTeam: "Chicago Bears", GameDate: time.Date(2025, time.September, 7, 20, 25, 0, 0, time.UTC)},
		{Code: 13004, WeekID: 2, HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins", GameDate: time.Date(2025, time.September, 12, 0, 15, 0, 0, time.UTC)},
		{Code: 13005, WeekID: 2, HomeTeam: "San Francisco 49ers", AwayTeam: "Seattle Seahawks", GameDate: time.Date(2025, time.September, 14, 20, 5, 0, 0, time.UTC)},
		{Code: 13006, WeekID: 3, HomeTeam: "Detroit Lions", AwayTeam: "Minnesota Vikings", GameDate: time.Date(2025, time.September, 21, 17, 0, 0, 0, time.UTC)},
		{Code: 13007, WeekID: 3, HomeTeam: "Cincinnati Bengals", AwayTeam: "Pittsburgh Steelers", GameDate: time.Date(2025, time.September, 21, 20, 25, 0, 0, time.UTC)},
		{Code: 13008, WeekID: 4, HomeTeam: "New York Jets", AwayTeam: "New England Patriots", GameDate: time.Date(2025, time.September, 28, 17, 0, 0, 0, time.UTC)},
	}
}
