package gameresult

import "time"

// Result is the ingested outcome of one game, keyed by the provider's
// fixture id. WinnerTeam is nil on a tie or while scores are missing.
type Result struct {
	GameID     int64
	Week       int
	HomeTeam   string
	AwayTeam   string
	HomeScore  *int
	AwayScore  *int
	WinnerTeam *string
	GameDate   time.Time
	UpdatedAt  time.Time
}

// Winner derives the winning team name from scores: nil unless both scores
// are present and one is strictly higher.
func Winner(homeTeam, awayTeam string, homeScore, awayScore *int) *string {
	if homeScore == nil || awayScore == nil {
		return nil
	}
	switch {
	case *homeScore > *awayScore:
		return &homeTeam
	case *awayScore > *homeScore:
		return &awayTeam
	default:
		return nil
	}
}
