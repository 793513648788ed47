package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the dev schedule into an empty database so a fresh
// instance serves weeks and games without a provider sync.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM weeks`); err != nil {
		return fmt.Errorf("count weeks for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, w := range memory.SeedWeeks() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO weeks (id, start_date)
VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING`, w.ID, w.StartDate); err != nil {
			return fmt.Errorf("seed week %d: %w", w.ID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO games (game_code, week_id, home_team, away_team, game_date)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (game_code) DO NOTHING`,
			g.Code, g.WeekID, g.HomeTeam, g.AwayTeam, g.GameDate); err != nil {
			return fmt.Errorf("seed game %d: %w", g.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
