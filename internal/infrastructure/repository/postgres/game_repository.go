package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-api/internal/domain/game"
	qb "github.com/pickemhq/pickem-api/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

type gameTableModel struct {
	Code     int64     `db:"game_code"`
	WeekID   int       `db:"week_id"`
	HomeTeam string    `db:"home_team"`
	AwayTeam string    `db:"away_team"`
	GameDate time.Time `db:"game_date"`
}

func (r *GameRepository) List(ctx context.Context, week *int) ([]game.Game, error) {
	builder := qb.Select("*").From("games")
	if week != nil {
		builder = builder.Where(qb.Eq("week_id", *week))
	}
	query, args, err := builder.OrderBy("week_id", "game_date", "game_code").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}

	return out, nil
}

func (r *GameRepository) MinGameDateByWeek(ctx context.Context, week int) (time.Time, bool, error) {
	query, args, err := qb.Select("MIN(game_date) AS min_game_date").From("games").
		Where(qb.Eq("week_id", week)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build min game date query: %w", err)
	}

	var minDate sql.NullTime
	if err := r.db.GetContext(ctx, &minDate, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select min game date week=%d: %w", week, err)
	}
	if !minDate.Valid {
		return time.Time{}, false, nil
	}

	return minDate.Time, true, nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		Code:     row.Code,
		WeekID:   row.WeekID,
		HomeTeam: row.HomeTeam,
		AwayTeam: row.AwayTeam,
		GameDate: row.GameDate,
	}
}
