package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
	qb "github.com/pickemhq/pickem-api/internal/platform/querybuilder"
)

type GameResultRepository struct {
	db *sqlx.DB
}

func NewGameResultRepository(db *sqlx.DB) *GameResultRepository {
	return &GameResultRepository{db: db}
}

type gameResultTableModel struct {
	GameID     int64     `db:"game_id"`
	Week       int       `db:"week"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	WinnerTeam *string   `db:"winner_team"`
	GameDate   time.Time `db:"game_date"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type gameResultInsertModel struct {
	GameID     int64     `db:"game_id"`
	Week       int       `db:"week"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	WinnerTeam *string   `db:"winner_team"`
	GameDate   time.Time `db:"game_date"`
}

func (r *GameResultRepository) Upsert(ctx context.Context, result gameresult.Result) error {
	model := gameResultInsertModel{
		GameID:     result.GameID,
		Week:       result.Week,
		HomeTeam:   result.HomeTeam,
		AwayTeam:   result.AwayTeam,
		HomeScore:  result.HomeScore,
		AwayScore:  result.AwayScore,
		WinnerTeam: result.WinnerTeam,
		GameDate:   result.GameDate.UTC(),
	}

	query, args, err := qb.InsertModel("game_results", model, `ON CONFLICT (game_id)
DO UPDATE SET
    week = EXCLUDED.week,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    winner_team = EXCLUDED.winner_team,
    game_date = EXCLUDED.game_date,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert game result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game result game_id=%d: %w", result.GameID, err)
	}

	return nil
}

func (r *GameResultRepository) ListByGameIDs(ctx context.Context, gameIDs []int64) ([]gameresult.Result, error) {
	ids := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("game_results").
		Where(qb.In("game_id", ids)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game results query: %w", err)
	}

	var rows []gameResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game results: %w", err)
	}

	out := make([]gameresult.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameresult.Result{
			GameID:     row.GameID,
			Week:       row.Week,
			HomeTeam:   row.HomeTeam,
			AwayTeam:   row.AwayTeam,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			WinnerTeam: row.WinnerTeam,
			GameDate:   row.GameDate,
			UpdatedAt:  row.UpdatedAt,
		})
	}

	return out, nil
}
