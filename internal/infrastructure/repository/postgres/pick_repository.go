package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
	qb "github.com/pickemhq/pickem-api/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// SaveWeekPicks upserts each submitted pick (last write wins per
// user/week/game, picks outside the batch are untouched) and flips the
// has_picks flag inside one transaction.
func (r *PickRepository) SaveWeekPicks(ctx context.Context, userID int64, week int, picks []pick.Pick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save picks tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range picks {
		model := pickInsertModel{
			UserID:     userID,
			Week:       week,
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
		}
		query, args, err := qb.InsertModel("user_picks", model, `ON CONFLICT (user_id, week, game_id)
DO UPDATE SET picked_team = EXCLUDED.picked_team`)
		if err != nil {
			return fmt.Errorf("build upsert pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("upsert pick game_id=%d: %w", p.GameID, pick.ErrUnknownGame)
			}
			return fmt.Errorf("upsert pick game_id=%d: %w", p.GameID, err)
		}
	}

	if err := upsertWeekStatus(ctx, tx, userID, week, true); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save picks tx: %w", err)
	}

	return nil
}

func (r *PickRepository) GetWeekStatus(ctx context.Context, userID int64, week int) (pick.WeekStatus, bool, error) {
	query, args, err := qb.Select("*").From("user_week_picks_status").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("week", week),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pick.WeekStatus{}, false, fmt.Errorf("build get week status query: %w", err)
	}

	var row weekStatusTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.WeekStatus{}, false, nil
		}
		return pick.WeekStatus{}, false, fmt.Errorf("get week status: %w", err)
	}

	return pick.WeekStatus{
		UserID:    row.UserID,
		Week:      row.Week,
		HasPicks:  row.HasPicks,
		UpdatedAt: row.UpdatedAt,
	}, true, nil
}

func (r *PickRepository) SetWeekStatus(ctx context.Context, userID int64, week int, hasPicks bool) error {
	return upsertWeekStatus(ctx, r.db, userID, week, hasPicks)
}

func upsertWeekStatus(ctx context.Context, db sqlx.ExecerContext, userID int64, week int, hasPicks bool) error {
	query, args, err := qb.InsertInto("user_week_picks_status").
		Columns("user_id", "week", "has_picks").
		Values(userID, week, hasPicks).
		Suffix(`ON CONFLICT (user_id, week)
DO UPDATE SET
    has_picks = EXCLUDED.has_picks,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert week status query: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert week status user_id=%d week=%d: %w", userID, week, err)
	}

	return nil
}

func (r *PickRepository) ListSaved(ctx context.Context, userID int64, week *int) ([]pick.SavedPick, error) {
	query := `
SELECT p.user_id, p.week, p.game_id, p.picked_team, p.is_correct,
       g.home_team, g.away_team, g.game_date
FROM user_picks p
JOIN games g ON g.game_code = p.game_id
WHERE p.user_id = $1`
	args := []any{userID}
	if week != nil {
		query += " AND p.week = $2"
		args = append(args, *week)
	}
	query += " ORDER BY p.week DESC, g.game_date, p.game_id"

	var rows []savedPickRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select saved picks user_id=%d: %w", userID, err)
	}

	out := make([]pick.SavedPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.SavedPick{
			UserID:     row.UserID,
			Week:       row.Week,
			GameID:     row.GameID,
			PickedTeam: row.PickedTeam,
			IsCorrect:  row.IsCorrect,
			HomeTeam:   row.HomeTeam,
			AwayTeam:   row.AwayTeam,
			GameDate:   row.GameDate,
		})
	}

	return out, nil
}

func (r *PickRepository) ListWeekDetail(ctx context.Context, week int) ([]pick.WeekDetail, error) {
	query := `
SELECT p.user_id, u.username, p.week, p.game_id, p.picked_team, p.is_correct,
       r.winner_team
FROM user_picks p
JOIN users u ON u.id = p.user_id
LEFT JOIN game_results r ON r.game_id = p.game_id
WHERE p.week = $1
ORDER BY u.username, p.game_id`

	var rows []weekDetailRowModel
	if err := r.db.SelectContext(ctx, &rows, query, week); err != nil {
		return nil, fmt.Errorf("select week detail week=%d: %w", week, err)
	}

	out := make([]pick.WeekDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.WeekDetail{
			UserID:     row.UserID,
			Username:   row.Username,
			Week:       row.Week,
			GameID:     row.GameID,
			PickedTeam: row.PickedTeam,
			IsCorrect:  row.IsCorrect,
			WinnerTeam: row.WinnerTeam,
		})
	}

	return out, nil
}

func (r *PickRepository) ListByGame(ctx context.Context, gameID int64) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("user_picks").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by game query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by game game_id=%d: %w", gameID, err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Pick{
			UserID:     row.UserID,
			Week:       row.Week,
			GameID:     row.GameID,
			PickedTeam: row.PickedTeam,
			IsCorrect:  row.IsCorrect,
		})
	}

	return out, nil
}

func (r *PickRepository) SetCorrectness(ctx context.Context, gameID int64, correctUserIDs, incorrectUserIDs []int64) error {
	if err := r.markCorrectness(ctx, gameID, correctUserIDs, true); err != nil {
		return err
	}
	return r.markCorrectness(ctx, gameID, incorrectUserIDs, false)
}

func (r *PickRepository) markCorrectness(ctx context.Context, gameID int64, userIDs []int64, correct bool) error {
	if len(userIDs) == 0 {
		return nil
	}

	query, args, err := qb.Update("user_picks").
		Set("is_correct", correct).
		Where(
			qb.Eq("game_id", gameID),
			qb.Expr("user_id = ANY(?)", pq.Array(userIDs)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark correctness query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark correctness game_id=%d correct=%t: %w", gameID, correct, err)
	}

	return nil
}

// GrandTotals counts correct picks through the given week per user. Users
// without any picks still get a row with a zero total.
func (r *PickRepository) GrandTotals(ctx context.Context, throughWeek int) ([]user.GrandTotal, error) {
	query := `
SELECT u.id AS user_id, u.username, COUNT(p.id) AS total
FROM users u
LEFT JOIN user_picks p
    ON p.user_id = u.id AND p.week <= $1 AND p.is_correct IS TRUE
GROUP BY u.id, u.username
ORDER BY total DESC, u.username ASC`

	var rows []grandTotalRowModel
	if err := r.db.SelectContext(ctx, &rows, query, throughWeek); err != nil {
		return nil, fmt.Errorf("select grand totals through week %d: %w", throughWeek, err)
	}

	out := make([]user.GrandTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.GrandTotal{
			UserID:   row.UserID,
			Username: row.Username,
			Total:    row.Total,
		})
	}

	return out, nil
}
